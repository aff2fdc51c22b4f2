package main

import (
	"os"
	"os/signal"

	config "github.com/avvvet/cardcraft-services/configs"
	"github.com/avvvet/cardcraft-services/internal/mailsvc"
	"github.com/avvvet/cardcraft-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "mail"

func init() {
	instanceId := "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	config.CreateUniqueInstance(SERVICE_NAME)

	// Connect to NATS
	n, err := nats.Connect(SERVICE_NAME + "-" + config.GetInstanceId())
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	cfg := mailsvc.ConfigFromEnv()
	var sender mailsvc.Sender = mailsvc.NewSMTPMailer(cfg)
	if !cfg.Configured() {
		log.Warn("SMTP_HOST/CONTACT_FROM/CONTACT_TO not set, contact messages will only be logged")
		sender = mailsvc.LogSender{}
	}

	consumer := mailsvc.NewConsumer(sender)
	sub, err := consumer.Subscribe(n.Conn)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}
	log.Infof("%s service listening on %s", SERVICE_NAME, sub.Subject)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	if err := sub.Drain(); err != nil {
		log.Warnf("drain: %v", err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
