package controller

import (
	"github.com/obrunogonzaga/formatura-2025/config"
	"github.com/obrunogonzaga/formatura-2025/infra"
	"github.com/obrunogonzaga/formatura-2025/repository"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
	}
}
