package propertyservice

// Property данные объекта недвижимости из PropertyService
type Property struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Region       string  `json:"region"`
	ContactName  string  `json:"contactName"`
	ContactPhone string  `json:"contactPhone"`
	ContactEmail *string `json:"contactEmail,omitempty"`
}
