package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/logger"

	"github.com/segmentio/kafka-go"
)

// Publisher 订单事件发布接口
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
	Close() error
}

// NewPublisher 根据配置创建发布器，未启用 Kafka 时返回空实现
func NewPublisher(cfg *config.KafkaConfig) Publisher {
	if cfg == nil || !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(cfg)
}

// NoopPublisher 空实现
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(context.Context, string, string, interface{}) error { return nil }

// Close 无需释放资源
func (NoopPublisher) Close() error { return nil }

// KafkaPublisher 基于 kafka-go 的发布器
type KafkaPublisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewKafkaPublisher 创建 Kafka 发布器
// writer 不绑定 topic，由每条消息指定
func NewKafkaPublisher(cfg *config.KafkaConfig) *KafkaPublisher {
	timeout := time.Duration(cfg.WriteTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           timeout,
		},
		timeout: timeout,
	}
}

// Publish 序列化并写入一条消息，相同 key 进入同一分区
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

// Close 关闭 writer
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// EnsureTopics 通过 controller 创建订单事件 topic（已存在时忽略）
func EnsureTopics(cfg *config.KafkaConfig) error {
	if cfg == nil || !cfg.Enabled || len(cfg.Brokers) == 0 {
		return nil
	}
	conn, err := kafka.Dial("tcp", strings.TrimSpace(cfg.Brokers[0]))
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", controller.Host+":"+strconv.Itoa(controller.Port))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	topics := []string{constants.TopicOrderPlaced, constants.TopicOrderStatusUpdated}
	configs := make([]kafka.TopicConfig, 0, len(topics))
	for _, topic := range topics {
		configs = append(configs, kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		})
	}
	if err := controllerConn.CreateTopics(configs...); err != nil {
		return err
	}
	logger.Infow("kafka_topics_ensured", "topics", topics)
	return nil
}
