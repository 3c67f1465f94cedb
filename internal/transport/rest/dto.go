package rest

type loginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type roomRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateRoomRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity" binding:"gte=0"`
}

type reserveRequest struct {
	Place       string `json:"place" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Name        string `json:"name" binding:"required"`
	RepeatType  string `json:"repeatType"`
	RepeatCount int    `json:"repeatCount"`
}

type reservationsQuery struct {
	Date string `form:"date"`
}
