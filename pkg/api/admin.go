package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"flowrelay/pkg/models"
)

type IAdminAPI interface {
	Users(ctx context.Context) ([]*models.User, error)
	PendingUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	SetUserApproval(ctx context.Context, id int64, update models.ApprovalUpdate) error
	Drivers(ctx context.Context) ([]*models.DriverProfile, error)
	PendingDrivers(ctx context.Context) ([]*models.DriverProfile, error)
	SetDriverApproval(ctx context.Context, id int64, update models.ApprovalUpdate) error
	AllOffers(ctx context.Context) ([]*models.Offer, error)
	UpdateOffer(ctx context.Context, id int64, draft models.OfferDraft) (*models.Offer, error)
	AssignDriver(ctx context.Context, offerID int64, assignment models.DriverAssignment) (*models.Offer, error)
	TripsReport(ctx context.Context, startDate, endDate, status string) (*models.TripsReport, error)
}

type adminAPI struct {
	rt rt
}

func (a adminAPI) Users(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := a.rt.do(ctx, http.MethodGet, "/admin/users", nil, nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

func (a adminAPI) PendingUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := a.rt.do(ctx, http.MethodGet, "/admin/users/pending", nil, nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

func (a adminAPI) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	var user models.User
	if err := a.rt.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), nil, update, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a adminAPI) DeleteUser(ctx context.Context, id int64) error {
	return a.rt.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil, nil, true)
}

func (a adminAPI) SetUserApproval(ctx context.Context, id int64, update models.ApprovalUpdate) error {
	return a.rt.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/approval", id), nil, update, nil, true)
}

func (a adminAPI) Drivers(ctx context.Context) ([]*models.DriverProfile, error) {
	var drivers []*models.DriverProfile
	if err := a.rt.do(ctx, http.MethodGet, "/admin/drivers", nil, nil, &drivers, true); err != nil {
		return nil, err
	}
	return drivers, nil
}

func (a adminAPI) PendingDrivers(ctx context.Context) ([]*models.DriverProfile, error) {
	var drivers []*models.DriverProfile
	if err := a.rt.do(ctx, http.MethodGet, "/admin/drivers/pending", nil, nil, &drivers, true); err != nil {
		return nil, err
	}
	return drivers, nil
}

func (a adminAPI) SetDriverApproval(ctx context.Context, id int64, update models.ApprovalUpdate) error {
	return a.rt.do(ctx, http.MethodPut, fmt.Sprintf("/admin/drivers/%d/approval", id), nil, update, nil, true)
}

func (a adminAPI) AllOffers(ctx context.Context) ([]*models.Offer, error) {
	var offers []*models.Offer
	if err := a.rt.do(ctx, http.MethodGet, "/admin/offers", nil, nil, &offers, true); err != nil {
		return nil, err
	}
	return offers, nil
}

func (a adminAPI) UpdateOffer(ctx context.Context, id int64, draft models.OfferDraft) (*models.Offer, error) {
	var offer models.Offer
	if err := a.rt.do(ctx, http.MethodPut, fmt.Sprintf("/admin/offers/%d", id), nil, draft, &offer, true); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (a adminAPI) AssignDriver(ctx context.Context, offerID int64, assignment models.DriverAssignment) (*models.Offer, error) {
	var offer models.Offer
	if err := a.rt.do(ctx, http.MethodPut, fmt.Sprintf("/admin/offers/%d/assign-driver", offerID), nil, assignment, &offer, true); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (a adminAPI) TripsReport(ctx context.Context, startDate, endDate, status string) (*models.TripsReport, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	if status != "" {
		q.Set("status", status)
	}
	var report models.TripsReport
	if err := a.rt.do(ctx, http.MethodGet, "/admin/reports/trips", q, nil, &report, true); err != nil {
		return nil, err
	}
	return &report, nil
}
