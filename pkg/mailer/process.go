package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runnershi/runnershi/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with the delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Drop            // nack without requeue; the job can never succeed
	Requeue         // nack with requeue; delivery failed transiently
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Requeue:
		return "requeue"
	}
	return "unknown"
}

var ErrEmptyJob = errors.New("job has neither template nor subject/body")

// Process decodes one queued job, renders it and hands it to sender.
func Process(ctx context.Context, body []byte, sender Sender) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("decode job: %w", err)
	}
	if strings.TrimSpace(job.To) == "" {
		return Drop, errors.New("job has no recipient")
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data["Email"] = job.To
		}
		s, t, h, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return Drop, err
		}
		subject, text, html = strings.TrimSpace(s), t, h
	} else if subject == "" || (text == "" && html == "") {
		return Drop, ErrEmptyJob
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := sender.Send(c, job.To, subject, text, html); err != nil {
		return Requeue, fmt.Errorf("send to %s: %w", job.To, err)
	}
	return Ack, nil
}
