package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/formatura-2025/http/controller"
	middlewares "github.com/obrunogonzaga/formatura-2025/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	r.GET("/healthz", ctrl.HealthCheck)

	submissionRoutes := r.Group("/submissions")
	{
		submissionRoutes.POST("", ctrl.CreateSubmission)
		submissionRoutes.GET("", ctrl.ListSubmissions)
	}

	return r
}
