package dto

import "github.com/byndl-mvp/PoC-sub002/pkg/catalog"

type CatalogRebuildResponse struct {
	Gewerke   []string `json:"gewerke"`
	Positions int      `json:"positions"`
}

type CatalogResponse struct {
	Gewerk    string             `json:"gewerk"`
	Positions []catalog.Position `json:"positions"`
}
