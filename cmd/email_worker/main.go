package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-marketplace-ddd/config"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
	"github.com/oksasatya/go-marketplace-ddd/pkg/mailer"
	mailtpl "github.com/oksasatya/go-marketplace-ddd/pkg/mailer/templates"
)

// Consumes EmailJob messages from the email queue and delivers them through
// Mailgun. Render failures are dropped (requeueing cannot fix a bad payload);
// send failures are requeued.
func main() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()
	resolver := mailtpl.IPAPIResolver{}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("bad message, dropping")
				_ = msg.Nack(false, false)
				continue
			}

			helpers.EnsureRecipientAndEmail(&job)
			helpers.MapLegacyToUniversal(&job)
			helpers.LocalizeTimesIfPossible(ctx, resolver, job.Data)

			subject := job.Subject
			text := job.Text
			html := job.HTML

			if job.Template != "" {
				if strings.EqualFold(job.Template, "universal") {
					if loc, ok := job.Data["Location"]; !ok || fmt.Sprintf("%v", loc) == "" {
						if ipVal, okIP := job.Data["IP"]; okIP {
							if g, err := resolver.Lookup(ctx, fmt.Sprintf("%v", ipVal)); err == nil {
								job.Data["Location"] = mailtpl.FormatGeo(g)
							}
						}
					}
					htmlStr, rerr := mailtpl.RenderHTML("universal", job.Data)
					if rerr != nil {
						logger.WithError(rerr).Error("render universal failed")
						_ = msg.Nack(false, false)
						continue
					}
					html = htmlStr
					subject = helpers.SubjectForUniversal(job.Data)
				} else {
					s, t, h, rerr := mailtpl.Render(job.Template, job.Data)
					if rerr != nil {
						logger.WithError(rerr).WithField("template", job.Template).Error("render failed")
						_ = msg.Nack(false, false)
						continue
					}
					subject, text, html = s, t, h
				}
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := mg.Send(c, job.To, subject, text, html); err != nil {
				cancel()
				logger.WithError(err).WithField("to", job.To).Warn("send failed, requeueing")
				_ = msg.Nack(false, true)
				continue
			}
			cancel()
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.WithFields(logrus.Fields{"queue": cfg.RabbitMQEmailQueue}).Info("email worker listening")
	<-stop
	logger.Info("shutting down")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
