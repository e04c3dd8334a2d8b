package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Mio254/spacer/internal/service"
	"github.com/Mio254/spacer/pkg/auth"
)

type Services struct {
	Auth       *service.AuthSvc
	Spaces     *service.SpaceSvc
	Bookings   *service.BookingSvc
	Payments   *service.PaymentSvc
	Agreements *service.AgreementSvc
	Tokens     *auth.Tokens
}

func NewRouter(s Services) *gin.Engine {
	r := gin.Default()

	ah := NewAuthHandler(s.Auth)
	sh := NewSpaceHandler(s.Spaces)
	bh := NewBookingHandler(s.Bookings)
	ph := NewPaymentHandler(s.Payments)
	gh := NewAgreementHandler(s.Agreements)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)

		// the processor calls this, not a user
		v1.POST("/payments/webhook", ph.Webhook)

		v1.GET("/spaces", sh.List)
		v1.GET("/spaces/:id", sh.Get)
		v1.GET("/spaces/:id/availability", bh.CheckAvailability)

		secured := v1.Group("")
		secured.Use(JWTAuth(s.Tokens))
		{
			secured.POST("/bookings", bh.Create)
			secured.GET("/bookings/me", bh.ListMine)
			secured.GET("/bookings/:id", bh.Get)
			secured.POST("/bookings/:id/cancel", bh.Cancel)

			secured.POST("/payments/create-intent", ph.CreateIntent)
			secured.POST("/payments/confirm/:intent_id", ph.Confirm)
			secured.GET("/invoices/:id", ph.GetInvoice)

			secured.POST("/agreements/accept", gh.Accept)
			secured.GET("/agreements/:booking_id", gh.Accepted)
		}

		admin := v1.Group("/admin")
		admin.Use(JWTAuth(s.Tokens), RequireRole("ADMIN"))
		{
			admin.GET("/users", ah.ListUsers)

			admin.POST("/spaces", sh.Create)
			admin.PATCH("/spaces/:id", sh.Patch)
			admin.POST("/spaces/:id/activate", sh.SetActive(true))
			admin.POST("/spaces/:id/deactivate", sh.SetActive(false))

			admin.GET("/bookings", bh.List)
			admin.PUT("/bookings/:id/status", bh.SetStatus)
		}
	}
	return r
}
