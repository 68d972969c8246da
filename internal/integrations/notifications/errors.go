package notifications

import "errors"

var (
	// ErrPublish возвращается при ошибке публикации в RabbitMQ
	ErrPublish = errors.New("notifications: failed to publish event")

	// ErrConnect возвращается при ошибке подключения к RabbitMQ
	ErrConnect = errors.New("notifications: failed to connect to broker")
)
