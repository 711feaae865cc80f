package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

// Capture mirrors the notification the edge service relays from the processor webhook.
type Capture struct {
	IntentID      string `json:"intentId"`
	CorrelationID string `json:"correlationId,omitempty"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
	PayerEmail    string `json:"payerEmail,omitempty"`
}

func randomString(n int) string {
	letters := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// generateCapture is mostly COMPLETED; some are PENDING and some miss the order id
// so the DLQ path gets traffic too.
func generateCapture(orderIDs []string) Capture {
	c := Capture{
		IntentID:      randomString(17),
		CorrelationID: orderIDs[rand.Intn(len(orderIDs))],
		Status:        "COMPLETED",
		TransactionID: randomString(17),
		PayerEmail:    fmt.Sprintf("buyer%d@example.com", rand.Intn(1000)),
	}
	switch rand.Intn(10) {
	case 0:
		c.Status = "PENDING"
	case 1:
		c.CorrelationID = ""
	}
	return c
}

func main() {
	brokers := flag.String("brokers", "localhost:9092", "comma separated kafka brokers")
	topic := flag.String("topic", "payment-captures", "capture notifications topic")
	orders := flag.String("orders", "", "comma separated order ids to confirm")
	interval := flag.Duration("interval", 2*time.Second, "delay between notifications")
	flag.Parse()

	if *orders == "" {
		log.Fatal("-orders is required")
	}
	orderIDs := strings.Split(*orders, ",")

	writer := &kafka.Writer{
		Addr:  kafka.TCP(strings.Split(*brokers, ",")...),
		Topic: *topic,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			capture := generateCapture(orderIDs)
			data, _ := json.Marshal(capture)
			if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(capture.CorrelationID), Value: data}); err != nil {
				log.Println("failed to write capture:", err)
				continue
			}
			log.Println("capture generated", capture.IntentID, capture.CorrelationID, capture.Status)
		case <-ctx.Done():
			return
		}
	}
}
