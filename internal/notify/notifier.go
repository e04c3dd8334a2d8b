package notify

import (
	"fmt"
	"log"
	"time"
)

// Notifier abstracts the delivery channel (email/SMS/chat later).
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier logs notifications; good enough until a real channel
// lands.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier { return &ConsoleNotifier{} }

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s", subject, message)
	return nil
}

func humanTimeRange(startUnix, endUnix int64) string {
	st := time.Unix(startUnix, 0).UTC()
	et := time.Unix(endUnix, 0).UTC()
	return fmt.Sprintf("%s to %s", st.Format("2006-01-02 15:04"), et.Format("15:04"))
}
