package api

import (
	v1 "github.com/Behyna/sms-services/scheduler/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefixUI = "/ui/"

func SetupRoutes(app *fiber.App, handler *v1.Handler, gatherer prometheus.Gatherer) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Get(prefixUI+"state", handler.State)
	app.Put(prefixUI+"state/tab", handler.SetTab)

	app.Get(prefixUI+"schedule", handler.SchedulerForm)
	app.Post(prefixUI+"schedule", handler.Schedule)

	app.Get(prefixUI+"messages", handler.Messages)
	app.Post(prefixUI+"messages/refresh", handler.Refresh)
	app.Get(prefixUI+"messages/:id/edit", handler.OpenEdit)
	app.Delete(prefixUI+"messages/:id/edit", handler.CancelEdit)
	app.Put(prefixUI+"messages/:id", handler.UpdateMessage)
	app.Delete(prefixUI+"messages/:id", handler.DeleteMessage)

	app.Get(prefixUI+"notifications", handler.Notifications)
}
