package views

import "strings"

// MenuItem is one sidebar entry
type MenuItem struct {
	Title  string `json:"title"`
	Path   string `json:"path"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

var menu = []MenuItem{
	{Title: "Dashboard", Path: "/", Icon: "home"},
	{Title: "Products", Path: "/products", Icon: "bookmark"},
	{Title: "Categories", Path: "/categories", Icon: "folder"},
	{Title: "Customers", Path: "/customers", Icon: "users"},
	{Title: "Admins", Path: "/admins", Icon: "shield"},
	{Title: "Orders", Path: "/orders", Icon: "credit-card"},
}

// Sidebar returns the navigation menu with the entry for current marked active
func Sidebar(current string) []MenuItem {
	items := make([]MenuItem, len(menu))
	copy(items, menu)
	for i := range items {
		if items[i].Path == "/" {
			items[i].Active = current == "/"
			continue
		}
		items[i].Active = current == items[i].Path || strings.HasPrefix(current, items[i].Path+"/")
	}
	return items
}
