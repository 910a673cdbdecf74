package tracking

// OrderService resolves the tracking identifier an order was assigned
// at creation time. Satisfied by the order service.
type OrderService interface {
	TrackingIDForOrder(orderID int) (string, error)
}

type Service struct {
	repo   Repository
	orders OrderService
}

func NewService(repo Repository, orders OrderService) *Service {
	return &Service{repo: repo, orders: orders}
}

func (s *Service) Append(l TrackingLog) (TrackingLog, error) {
	return s.repo.Append(l)
}

func (s *Service) Timeline(trackingID string) []TrackingLog {
	return s.repo.ListByTrackingID(trackingID)
}

// TimelineForOrder looks up the order's tracking id and returns its
// logs oldest first.
func (s *Service) TimelineForOrder(orderID int) ([]TrackingLog, error) {
	trackingID, err := s.orders.TrackingIDForOrder(orderID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTrackingID(trackingID), nil
}
