package availability

import "stayhub/internal/domain"

type CheckRequest struct {
	RoomTypeID   int64  `json:"roomTypeId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

type CheckResponse struct {
	Available      bool          `json:"available"`
	AvailableRooms []domain.Room `json:"availableRooms"`
}

type SearchRequest struct {
	CheckInDate    string `json:"checkInDate" binding:"required"`
	CheckOutDate   string `json:"checkOutDate" binding:"required"`
	Adults         int    `json:"adults" binding:"required,gt=0"`
	Children       int    `json:"children"`
	Rooms          int    `json:"rooms"`
	Location       string `json:"location"`
	CategoryID     *int64 `json:"categoryId"`
	IncludeSoldOut bool   `json:"includeSoldOut"`
}

type RoomTypeResult struct {
	RoomType       domain.RoomType `json:"roomType"`
	AvailableCount int             `json:"availableCount"`
}

type SearchResponse struct {
	AvailableRoomTypes []RoomTypeResult `json:"availableRoomTypes"`
}
