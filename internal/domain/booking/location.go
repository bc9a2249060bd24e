package booking

type Location string

const (
	LocationAirport       Location = "airport"
	LocationCityCenter    Location = "city_center"
	LocationTrainStation  Location = "train_station"
	LocationHarbor        Location = "harbor"
	LocationHotelDelivery Location = "hotel_delivery"
)

func Locations() []Location {
	return []Location{
		LocationAirport,
		LocationCityCenter,
		LocationTrainStation,
		LocationHarbor,
		LocationHotelDelivery,
	}
}

func (l Location) String() string {
	return string(l)
}

func (l Location) IsValid() bool {
	switch l {
	case LocationAirport, LocationCityCenter, LocationTrainStation, LocationHarbor, LocationHotelDelivery:
		return true
	default:
		return false
	}
}

func NewLocation(s string) (Location, error) {
	l := Location(s)
	if !l.IsValid() {
		return "", ErrInvalidLocation
	}
	return l, nil
}
