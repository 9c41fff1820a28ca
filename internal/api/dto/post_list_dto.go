package dto

type PostListDTO struct {
	Skip  int64 `form:"skip" binding:"omitempty,min=0"`
	Limit int64 `form:"limit" binding:"omitempty,min=0"`
}
