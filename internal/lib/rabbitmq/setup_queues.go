package rabbitmq

// QueueConfig описывает очередь и ключ, которым она привязана к обменнику заявок.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

const (
	NewContactQueue      = "contact.new"
	NewContactRoutingKey = "new"
)

func GetContactQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: NewContactQueue, RoutingKey: NewContactRoutingKey},
	}
}
