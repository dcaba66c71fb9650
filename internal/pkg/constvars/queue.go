package constvars

// Discrete-data queue names and the worker lock key.
const (
	RabbitMQDiscreteWakeupQueue = "discrete_data_wakeup_queue"
	RabbitMQDiscreteWakeupDLQ   = "discrete_data_wakeup_dlq"

	DiscreteWorkerLockKey = "discrete:worker:lock"
)
