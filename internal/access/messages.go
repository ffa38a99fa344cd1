package access

// Messages are the notifications of one resource's mutations
type Messages struct {
	Created      string
	CreateFailed string
	Updated      string
	UpdateFailed string
	Deleted      string
	DeleteFailed string
}

// MessagesFor builds the standard Vietnamese messages for an entity noun
func MessagesFor(noun string) Messages {
	return Messages{
		Created:      "Tạo " + noun + " thành công!",
		CreateFailed: "Có lỗi xảy ra khi tạo " + noun,
		Updated:      "Cập nhật thông tin " + noun + " thành công!",
		UpdateFailed: "Có lỗi xảy ra khi cập nhật thông tin " + noun,
		Deleted:      "Xóa " + noun + " thành công!",
		DeleteFailed: "Có lỗi xảy ra khi xóa " + noun,
	}
}

// Messages of each console resource
var (
	ProductMessages  = MessagesFor("sản phẩm")
	CategoryMessages = MessagesFor("danh mục")
	CustomerMessages = MessagesFor("khách hàng")
	AdminMessages    = MessagesFor("quản trị viên")
	OrderMessages    = MessagesFor("đơn hàng")
)

// Order status action messages
const (
	StatusUpdated      = "Cập nhật trạng thái đơn hàng thành công!"
	StatusUpdateFailed = "Có lỗi xảy ra khi cập nhật trạng thái đơn hàng"
	OrderCancelled     = "Hủy đơn hàng thành công!"
	CancelFailed       = "Có lỗi xảy ra khi hủy đơn hàng"
)
