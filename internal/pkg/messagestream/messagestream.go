package messagestream

import (
	"backoffice-service/config"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/message/router/plugin"
)

type MessageStream interface {
	NewSubscriber() (message.Subscriber, error)
	NewPublisher() (message.Publisher, error)
}

type ampq struct {
	cfg    *config.MessageStreamConfig
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig) MessageStream {
	return &ampq{
		cfg:    cfg,
		logger: watermill.NewStdLogger(false, false),
	}
}

func (a *ampq) uri() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", a.cfg.User, a.cfg.Password, a.cfg.Host, a.cfg.Port)
}

func (a *ampq) NewSubscriber() (message.Subscriber, error) {
	amqpConfig := amqp.NewDurableQueueConfig(a.uri())
	return amqp.NewSubscriber(amqpConfig, a.logger)
}

func (a *ampq) NewPublisher() (message.Publisher, error) {
	amqpConfig := amqp.NewDurableQueueConfig(a.uri())
	return amqp.NewPublisher(amqpConfig, a.logger)
}

// NewRouter wires one subscribe topic to one handler, with failed
// messages diverted to the poison topic instead of blocking the queue.
func NewRouter(
	publisher message.Publisher,
	poisonTopic string,
	handlerName string,
	subscribeTopic string,
	subscriber message.Subscriber,
	handlerFunc func(msg *message.Message) error,
) (*message.Router, error) {
	logger := watermill.NewStdLogger(false, false)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	poisonQueue, err := middleware.PoisonQueue(publisher, poisonTopic)
	if err != nil {
		return nil, err
	}

	router.AddPlugin(plugin.SignalsHandler)
	router.AddMiddleware(middleware.Recoverer, poisonQueue)
	router.AddNoPublisherHandler(handlerName, subscribeTopic, subscriber, handlerFunc)

	return router, nil
}
