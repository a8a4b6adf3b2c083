package models

import (
	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID   string `bun:"id,pk,type:uuid" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

type Company struct {
	bun.BaseModel `bun:"table:companies,alias:co"`

	ID   string `bun:"id,pk,type:uuid" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

type Item struct {
	bun.BaseModel `bun:"table:items,alias:it"`

	ID         string `bun:"id,pk,type:uuid" json:"id"`
	CategoryID string `bun:"category_id,notnull,type:uuid" json:"category_id"`
	Name       string `bun:"name,notnull" json:"name"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}
