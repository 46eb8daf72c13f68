package services

import (
	"log"
	"sync"
	"time"
)

// Message is one outbound notification.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers a single message. utils/mailer satisfies this in
// production; tests substitute a recording fake.
type Sender interface {
	Send(to []string, subject, body string) error
}

// Outbox decouples notification delivery from the request path. Enqueue
// never blocks and never fails the caller; a background worker attempts
// delivery with a bounded retry, and logs failures instead of propagating
// them. The mutation that triggered a notification is always committed
// before Enqueue is called, so a lost notification can never roll it back.
type Outbox struct {
	sender     Sender
	queue      chan Message
	retries    int
	retryDelay time.Duration
	wg         sync.WaitGroup

	closeOnce sync.Once
}

func NewOutbox(sender Sender) *Outbox {
	ob := &Outbox{
		sender:     sender,
		queue:      make(chan Message, 256),
		retries:    3,
		retryDelay: 2 * time.Second,
	}
	ob.wg.Add(1)
	go ob.run()
	return ob
}

// Enqueue hands a message to the delivery worker. If the queue is full the
// message is dropped and logged; delivery is best effort.
func (ob *Outbox) Enqueue(msg Message) {
	if len(msg.To) == 0 {
		return
	}
	select {
	case ob.queue <- msg:
	default:
		log.Printf("outbox: queue full, dropping notification %q", msg.Subject)
	}
}

// Close stops accepting messages and waits for queued deliveries to finish.
func (ob *Outbox) Close() {
	ob.closeOnce.Do(func() {
		close(ob.queue)
	})
	ob.wg.Wait()
}

func (ob *Outbox) run() {
	defer ob.wg.Done()
	for msg := range ob.queue {
		ob.deliver(msg)
	}
}

func (ob *Outbox) deliver(msg Message) {
	var err error
	for attempt := 1; attempt <= ob.retries; attempt++ {
		if err = ob.sender.Send(msg.To, msg.Subject, msg.Body); err == nil {
			return
		}
		if attempt < ob.retries {
			time.Sleep(ob.retryDelay)
		}
	}
	log.Printf("outbox: giving up on notification %q after %d attempts: %v", msg.Subject, ob.retries, err)
}
