package repositories

import "context"

// Repository groups the repositories behind one connection
type Repository interface {
	Survey() SurveyRepository
	Response() ResponseRepository
	Ping(ctx context.Context) error
	Close() error
}
