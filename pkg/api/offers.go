package api

import (
	"context"
	"fmt"
	"net/http"

	"flowrelay/pkg/models"
)

type IOfferAPI interface {
	Create(ctx context.Context, draft models.OfferDraft) (*models.Offer, error)
	Mine(ctx context.Context) ([]*models.Offer, error)
	Get(ctx context.Context, id int64) (*models.Offer, error)
	Update(ctx context.Context, id int64, draft models.OfferDraft) (*models.Offer, error)
}

type offerAPI struct {
	rt rt
}

func (o offerAPI) Create(ctx context.Context, draft models.OfferDraft) (*models.Offer, error) {
	var offer models.Offer
	if err := o.rt.do(ctx, http.MethodPost, "/offers", nil, draft, &offer, true); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (o offerAPI) Mine(ctx context.Context) ([]*models.Offer, error) {
	var offers []*models.Offer
	if err := o.rt.do(ctx, http.MethodGet, "/offers/my", nil, nil, &offers, true); err != nil {
		return nil, err
	}
	return offers, nil
}

func (o offerAPI) Get(ctx context.Context, id int64) (*models.Offer, error) {
	var offer models.Offer
	if err := o.rt.do(ctx, http.MethodGet, fmt.Sprintf("/offers/%d", id), nil, nil, &offer, true); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (o offerAPI) Update(ctx context.Context, id int64, draft models.OfferDraft) (*models.Offer, error) {
	var offer models.Offer
	if err := o.rt.do(ctx, http.MethodPut, fmt.Sprintf("/offers/%d", id), nil, draft, &offer, true); err != nil {
		return nil, err
	}
	return &offer, nil
}
