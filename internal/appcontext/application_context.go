package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/FacundoGArg/empanadora/internal/config"
	"github.com/FacundoGArg/empanadora/internal/infra/repository/db"
	"github.com/FacundoGArg/empanadora/internal/infra/repository/redis_repo"
	"github.com/FacundoGArg/empanadora/internal/producer"
	"github.com/FacundoGArg/empanadora/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	DbConn             *gorm.DB
	Store              db.IStore
	RedisClient        *redis.Client
	PromotionRepo      db.IPromotionRepository
	OrderEventProducer producer.IOrderEventProducer
	MenuService        service.IMenuService
	PromotionService   service.IPromotionService
	OrderService       service.IOrderService
	Cf                 *config.Config
	Logger             zerolog.Logger
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf:     cf,
		Logger: zerolog.New(os.Stdout).With().Timestamp().Str("module", cf.ModulerName).Logger(),
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpStore()
	if err != nil {
		return err
	}
	err = app.setUpRedis()
	if err != nil {
		return err
	}
	err = app.setUpPromotionRepo()
	if err != nil {
		return err
	}
	err = app.setUpOrderEventProducer()
	if err != nil {
		return err
	}
	err = app.setUpMenuService()
	if err != nil {
		return err
	}
	err = app.setUpPromotionService()
	if err != nil {
		return err
	}
	err = app.setUpOrderService()
	if err != nil {
		return err
	}
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpStore() error {
	log.Printf("Start setup database store")
	dao := db.NewDbDao(app.DbConn)
	if err := dao.InitMigrate(); err != nil {
		return err
	}
	app.Store = db.NewStore(dao)
	log.Printf("Finish setup database store")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis client")
	client := redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	app.RedisClient = client
	log.Printf("Finish setup redis client")
	return nil
}

func (app *ApplicationContext) setUpPromotionRepo() error {
	log.Printf("Start setup promotion repository")
	app.PromotionRepo = redis_repo.NewCachedPromotionRepo(app.RedisClient, app.Store, 0)
	log.Printf("Finish setup promotion repository")
	return nil
}

// kafka沒設定就不發事件，訂單流程照常運作
func (app *ApplicationContext) setUpOrderEventProducer() error {
	log.Printf("Start setup order event producer")
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Printf("no kafka brokers configured, order events disabled")
		return nil
	}
	app.OrderEventProducer = producer.NewKafkaOrderEventProducer(brokers, app.Cf.KafkaOrderTopic)
	log.Printf("Finish setup order event producer")
	return nil
}

func (app *ApplicationContext) setUpMenuService() error {
	log.Printf("Start setup menu service")
	app.MenuService = service.NewMenuService(app.Store)
	log.Printf("Finish setup menu service")
	return nil
}

func (app *ApplicationContext) setUpPromotionService() error {
	log.Printf("Start setup promotion service")
	app.PromotionService = service.NewPromotionService(app.PromotionRepo, app.Store, app.Store, app.MenuService, app.Logger)
	log.Printf("Finish setup promotion service")
	return nil
}

func (app *ApplicationContext) setUpOrderService() error {
	log.Printf("Start setup order service")
	app.OrderService = service.NewOrderService(app.Store, app.PromotionRepo, app.MenuService, app.OrderEventProducer, app.Logger, app.Cf.DefaultCurrency)
	log.Printf("Finish setup order service")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderEventProducer != nil {
			log.Printf("Closing order event producer...")
			if err := app.OrderEventProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("order event producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis client shutdown error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
