//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/peershare/service-rental/internal/application"
	"github.com/peershare/service-rental/internal/events"
	"github.com/peershare/service-rental/internal/kafka"
	"github.com/peershare/service-rental/internal/repository"
)

// nopSearchCache satisfies application.ItemSearchCache without a Redis
// container. Search caching has its own unit coverage.
type nopSearchCache struct{}

func (nopSearchCache) Get(ctx context.Context, text string, from, size int) ([]application.ItemDTO, bool) {
	return nil, false
}

func (nopSearchCache) Set(ctx context.Context, text string, from, size int, items []application.ItemDTO) {
}

func (nopSearchCache) Invalidate(ctx context.Context) {}

// rentalStack holds the fully wired service layer backed by real containers.
type rentalStack struct {
	db       *gorm.DB
	bookings *application.BookingService
	items    *application.ItemService
	users    *application.UserService
	requests *application.RequestService
	producer *kafka.Producer
}

// setupContainers starts Postgres and Kafka containers and returns a live
// gorm handle plus the broker addresses. Containers are cleaned up with the
// test.
func setupContainers(t *testing.T) (*gorm.DB, []string) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "rental_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=rental_test sslmode=disable",
		host, port.Port())

	var db *gorm.DB
	require.Eventually(t, func() bool {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		return err == nil
	}, 30*time.Second, time.Second, "postgres never became connectable")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemRequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kafkaContainer.Terminate(context.Background()) })

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	createTopics(t, brokers, events.TopicBookingEvents)

	return db, brokers
}

// setupRentalStack wires real repositories and services on top of the
// containers, the same way cmd/server does.
func setupRentalStack(t *testing.T, db *gorm.DB, brokers []string) *rentalStack {
	t.Helper()

	logger := zap.NewNop()
	producer := kafka.NewProducer(brokers, logger)
	t.Cleanup(func() { _ = producer.Close() })

	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	checker := application.NewAvailabilityChecker(bookingRepo, itemRepo)

	return &rentalStack{
		db:       db,
		bookings: application.NewBookingService(bookingRepo, itemRepo, userRepo, checker, producer, logger),
		items:    application.NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, nopSearchCache{}, logger),
		users:    application.NewUserService(userRepo, itemRepo, bookingRepo, logger),
		requests: application.NewRequestService(requestRepo, itemRepo, userRepo, logger),
		producer: producer,
	}
}

func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	configs := make([]kafkago.TopicConfig, 0, len(topics))
	for _, topic := range topics {
		configs = append(configs, kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}
	require.NoError(t, controllerConn.CreateTopics(configs...))
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) int64 {
	t.Helper()
	model := repository.UserModel{Name: name, Email: email}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

func seedItem(t *testing.T, db *gorm.DB, ownerID int64, name string, available bool) int64 {
	t.Helper()
	model := repository.ItemModel{
		Name:        name,
		Description: name + " for rent",
		Available:   available,
		OwnerID:     ownerID,
	}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

// seedBooking inserts a booking row directly, bypassing the service layer so
// tests can place intervals in the past.
func seedBooking(t *testing.T, db *gorm.DB, itemID, bookerID int64, start, end time.Time, status string) int64 {
	t.Helper()
	model := repository.BookingModel{
		StartTime: start,
		EndTime:   end,
		ItemID:    itemID,
		BookerID:  bookerID,
		Status:    status,
		Version:   1,
	}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

// consumeOneEvent reads a single CloudEvent of the given type from the topic,
// skipping any others it encounters first.
func consumeOneEvent(t *testing.T, brokers []string, topic, eventType string) kafka.CloudEvent {
	t.Helper()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	defer reader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for {
		msg, err := reader.ReadMessage(ctx)
		require.NoError(t, err, "no %s event arrived on %s", eventType, topic)

		ce, err := kafka.ParseCloudEvent(msg.Value)
		require.NoError(t, err)
		if ce.Type == eventType {
			return ce
		}
	}
}
