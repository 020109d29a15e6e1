package notice

// NoticeForm - тело POST и PUT /notices
type NoticeForm struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}
