package main

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/go-dmitri/pocket-bank/pkg/configpkg"
	"github.com/go-dmitri/pocket-bank/pkg/tokenpkg"
	_ "github.com/lib/pq"

	"github.com/go-dmitri/pocket-bank/internal/accountdelivery"
	"github.com/go-dmitri/pocket-bank/internal/accountrepo"
	"github.com/go-dmitri/pocket-bank/internal/accountservice"
	"github.com/go-dmitri/pocket-bank/internal/loandelivery"
	"github.com/go-dmitri/pocket-bank/internal/loanrepo"
	"github.com/go-dmitri/pocket-bank/internal/loanservice"
	"github.com/go-dmitri/pocket-bank/internal/middleware"
	"github.com/go-dmitri/pocket-bank/internal/notificationdelivery"
	"github.com/go-dmitri/pocket-bank/internal/notificationrepo"
	"github.com/go-dmitri/pocket-bank/internal/notificationservice"
	"github.com/go-dmitri/pocket-bank/internal/sessiondelivery"
	"github.com/go-dmitri/pocket-bank/internal/sessionrepo"
	"github.com/go-dmitri/pocket-bank/internal/sessionservice"
	"github.com/go-dmitri/pocket-bank/internal/transactiondelivery"
	"github.com/go-dmitri/pocket-bank/internal/transactionrepo"
	"github.com/go-dmitri/pocket-bank/internal/transactionservice"
	"github.com/go-dmitri/pocket-bank/internal/transferdelivery"
	"github.com/go-dmitri/pocket-bank/internal/transferrepo"
	"github.com/go-dmitri/pocket-bank/internal/transferservice"
	"github.com/go-dmitri/pocket-bank/internal/userdelivery"
	"github.com/go-dmitri/pocket-bank/internal/userrepo"
	"github.com/go-dmitri/pocket-bank/internal/userservice"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	loanRepo := loanrepo.NewRepoPGS(conn)
	notificationRepo := notificationrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	openingBalance, err := decimal.NewFromString(config.OpeningBalance)
	if err != nil {
		return nil, errors.New("cannot parse opening balance")
	}

	accountService := accountservice.New(accountRepo, openingBalance)
	userService := userservice.New(userRepo, accountService, config.DefaultCurrency)
	transactionService := transactionservice.New(transactionRepo)
	transferService := transferservice.New(transferRepo, accountService)
	notificationService := notificationservice.New(notificationRepo)
	loanService := loanservice.New(loanRepo, notificationService)
	sessionService := sessionservice.New(sessionRepo, config, tokenMaker)

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	transferHandler := transferdelivery.NewHandler(transferService)
	loanHandler := loandelivery.NewHandler(loanService)
	notificationHandler := notificationdelivery.NewHandler(notificationService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/users", userHandler.Create)
	server.POST("/users/login", userHandler.Login)
	server.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/account", accountHandler.Get)

	authRoutes.POST("/transfers", transferHandler.Create)

	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.GET("/transactions/:id", transactionHandler.Get)

	authRoutes.POST("/loans/simulate", loanHandler.Simulate)
	authRoutes.POST("/loans", loanHandler.Create)
	authRoutes.GET("/loans", loanHandler.List)
	authRoutes.GET("/loans/:id", loanHandler.Get)
	authRoutes.PATCH("/loans/:id/status", loanHandler.SetStatus)

	authRoutes.GET("/notifications", notificationHandler.List)
	authRoutes.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
	authRoutes.POST("/notifications/read-all", notificationHandler.MarkAllRead)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("currency", accountdelivery.ValidCurrency); err != nil {
			return nil, errors.New("cannot register currency validator")
		}

		if err := v.RegisterValidation("loanstatus", loandelivery.ValidLoanStatus); err != nil {
			return nil, errors.New("cannot register loanstatus validator")
		}
	}

	return server, nil
}
