package router

import (
	"github.com/Amrsono/Store-2090/internal/application"
	"github.com/Amrsono/Store-2090/internal/container"
	pginfra "github.com/Amrsono/Store-2090/internal/infrastructure/postgres"
	handlers "github.com/Amrsono/Store-2090/internal/interface/http"
	"github.com/Amrsono/Store-2090/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	orders := pginfra.NewOrderRepository(pool)

	var mail application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		mail = pub
	}

	accounts := application.NewAccountService(users, jwt, mail, logger, cfg.StoreName, cfg.VerifyEmailURL)
	catalog := application.NewCatalogService(products, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESProductsIndex, logger)
	orderSvc := application.NewOrderService(orders, products, users, mail, logger, cfg.StoreName)

	r.Add(modules.NewAuth(handlers.NewAuthHandler(accounts, logger), jwt))
	r.Add(modules.NewCatalog(handlers.NewProductHandler(catalog, logger), jwt))
	r.Add(modules.NewOrder(handlers.NewOrderHandler(orderSvc, logger), jwt))
}
