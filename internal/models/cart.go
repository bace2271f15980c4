package models

type AddOrderItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type UpdateQuantityQuery struct {
	Quantity *int `form:"quantity" binding:"required"`
}

type UpdateStatusQuery struct {
	Status string `form:"status" binding:"required"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProductQuantity struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}
