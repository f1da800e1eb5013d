package models

// UserRecord is the profile blob persisted in the session alongside the
// bearer token. It is always written whole, never patched.
type UserRecord struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"userId,omitempty"` // legacy field name still sent by some endpoints
	Role    string `json:"role,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
}

type Order struct {
	OrderID     int64       `json:"orderId"`
	TotalAmount float64     `json:"totalAmount"`
	FinalAmount float64     `json:"finalAmount"`
	OrderStatus string      `json:"orderStatus"`
	OrderDate   string      `json:"orderDate"`
	Items       []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID    int64    `json:"productId"`
	ProductName  string   `json:"productName"`
	ProductPrice float64  `json:"productPrice"`
	Quantity     int      `json:"quantity"`
	TotalPrice   float64  `json:"totalPrice"` // trusted from the server, not recomputed
	Images       []string `json:"images,omitempty"`
}

type SampleRequest struct {
	SampleRequestID int64  `json:"sampleRequestId"`
	ProductID       int64  `json:"productId"`
	ProductName     string `json:"productName"`
	HouseNo         string `json:"houseNo"`
	Street          string `json:"street"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
	Status          string `json:"status"`
	RequestedAt     string `json:"requestedAt"`
	ApprovedDate    string `json:"approvedDate,omitempty"`
	ShippedDate     string `json:"shippedDate,omitempty"`
	AdminRemark     string `json:"adminRemark,omitempty"`
}

// CatalogProduct is the upstream catalog shape. The sample-request page maps
// it to Product (id -> productId, name -> productName) before use.
type CatalogProduct struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

type Product struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	Price        float64 `json:"price,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
}

type Banner struct {
	ID        int64  `json:"id"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
}
