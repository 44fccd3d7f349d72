package dto

import "github.com/fekuna/omnipos-storefront/internal/model"

type ProductList struct {
	Count    int             `json:"count"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	HasNext  bool            `json:"has_next"`
	Results  []model.Product `json:"results"`
}
