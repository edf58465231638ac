package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"flowrelay/pkg/models"
)

type IDriverAPI interface {
	Profile(ctx context.Context) (*models.DriverProfile, error)
	CreateProfile(ctx context.Context, profile *models.DriverProfile) (*models.DriverProfile, error)
	UpdateProfile(ctx context.Context, profile *models.DriverProfile) (*models.DriverProfile, error)
	UpdateStatus(ctx context.Context, status models.Availability) error
	AvailableOffers(ctx context.Context) ([]*models.Offer, error)
	MyAssignments(ctx context.Context) ([]*models.Offer, error)
	ActiveOffers(ctx context.Context) ([]*models.Offer, error)
	Offer(ctx context.Context, id int64) (*models.Offer, error)
	Accept(ctx context.Context, offerID int64) error
	UpdateOfferStatus(ctx context.Context, offerID int64, status models.OfferStatus) error
	Statistics(ctx context.Context) (*models.DriverStatistics, error)
	History(ctx context.Context, limit int) ([]*models.Offer, error)
}

type driverAPI struct {
	rt rt
}

func (d driverAPI) Profile(ctx context.Context) (*models.DriverProfile, error) {
	var profile models.DriverProfile
	if err := d.rt.do(ctx, http.MethodGet, "/driver/profile", nil, nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (d driverAPI) CreateProfile(ctx context.Context, profile *models.DriverProfile) (*models.DriverProfile, error) {
	var created models.DriverProfile
	if err := d.rt.do(ctx, http.MethodPost, "/driver/profile", nil, profile, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (d driverAPI) UpdateProfile(ctx context.Context, profile *models.DriverProfile) (*models.DriverProfile, error) {
	var updated models.DriverProfile
	if err := d.rt.do(ctx, http.MethodPut, "/driver/profile", nil, profile, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus flips the availability toggle. The backend declares the
// new value as a query parameter, not a body.
func (d driverAPI) UpdateStatus(ctx context.Context, status models.Availability) error {
	q := url.Values{}
	q.Set("status", string(status))
	return d.rt.do(ctx, http.MethodPut, "/driver/status", q, nil, nil, true)
}

func (d driverAPI) AvailableOffers(ctx context.Context) ([]*models.Offer, error) {
	var offers []*models.Offer
	if err := d.rt.do(ctx, http.MethodGet, "/driver/offers/available", nil, nil, &offers, true); err != nil {
		return nil, err
	}
	return offers, nil
}

func (d driverAPI) MyAssignments(ctx context.Context) ([]*models.Offer, error) {
	var offers []*models.Offer
	if err := d.rt.do(ctx, http.MethodGet, "/driver/offers/my-assignments", nil, nil, &offers, true); err != nil {
		return nil, err
	}
	return offers, nil
}

func (d driverAPI) ActiveOffers(ctx context.Context) ([]*models.Offer, error) {
	var offers []*models.Offer
	if err := d.rt.do(ctx, http.MethodGet, "/driver/offers/active", nil, nil, &offers, true); err != nil {
		return nil, err
	}
	return offers, nil
}

func (d driverAPI) Offer(ctx context.Context, id int64) (*models.Offer, error) {
	var offer models.Offer
	if err := d.rt.do(ctx, http.MethodGet, fmt.Sprintf("/driver/offers/%d", id), nil, nil, &offer, true); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (d driverAPI) Accept(ctx context.Context, offerID int64) error {
	return d.rt.do(ctx, http.MethodPost, fmt.Sprintf("/driver/offers/%d/accept", offerID), nil, nil, nil, true)
}

func (d driverAPI) UpdateOfferStatus(ctx context.Context, offerID int64, status models.OfferStatus) error {
	body := map[string]string{"status": string(status)}
	return d.rt.do(ctx, http.MethodPut, fmt.Sprintf("/driver/offers/%d/status", offerID), nil, body, nil, true)
}

func (d driverAPI) Statistics(ctx context.Context) (*models.DriverStatistics, error) {
	var stats models.DriverStatistics
	if err := d.rt.do(ctx, http.MethodGet, "/driver/statistics", nil, nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (d driverAPI) History(ctx context.Context, limit int) ([]*models.Offer, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var offers []*models.Offer
	if err := d.rt.do(ctx, http.MethodGet, "/driver/history", q, nil, &offers, true); err != nil {
		return nil, err
	}
	return offers, nil
}
