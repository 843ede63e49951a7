package slotnotifier

// SlotEventPayload модель события слота, отправляемая внешнему получателю
type SlotEventPayload struct {
	Event            string `json:"event"`
	SlotID           int64  `json:"slotId"`
	FormID           int64  `json:"formId"`
	StartingDateTime string `json:"startingDateTime"`
	EndingDateTime   string `json:"endingDateTime"`
	MaxCapacity      int    `json:"maxCapacity"`
	NbPlacesTaken    int    `json:"nbPlacesTaken"`
	IsOpen           bool   `json:"isOpen"`
	IsOverbooked     bool   `json:"isOverbooked"`
}

// ErrorResponse модель ошибки от внешнего получателя
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
