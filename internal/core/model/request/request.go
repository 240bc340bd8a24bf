package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=100"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=3,max=255"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Status      *string `json:"status" validate:"omitnil,oneof=pending completed"`
}

type PaginationRequest struct {
	Page  *int `form:"page" validate:"omitnil,min=1,max=1000000"`
	Limit *int `form:"limit" validate:"omitnil,min=1"`
}

type TaskURI struct {
	ID int64 `uri:"id" validate:"required,min=1"`
}
