package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dmxlink/internal/clientmqtt"
	"dmxlink/internal/config"
	"dmxlink/internal/dmx"
	"dmxlink/internal/drivers"
	"dmxlink/internal/logger"

	// Register the transport drivers.
	_ "dmxlink/internal/drivers/artnet"
	_ "dmxlink/internal/drivers/avrdmx"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "configs/conf.toml", "Path to configuration file")
}

func main() {
	flag.Parse()
	cfg, err := config.NewConfig(configFile)
	if err != nil {
		fmt.Printf("configuration file read error: %v", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Printf("failed to create a logger: %v", err)
		os.Exit(1)
	}

	log.With(logger.Fields{"module": "logger"}).Debug("newLogger created ok")

	iface, err := dmx.NewInterface(cfg.Driver.Name, drivers.Options{
		Log:      log,
		Device:   cfg.Driver.Device,
		Baudrate: cfg.Driver.Baudrate,
		Encoding: cfg.Driver.Encoding,
		Universe: cfg.ArtNet.Universe,
	})
	if err != nil {
		log.With(logger.Fields{"module": "dmx"}).Errorf("error while creating the DMX interface (known drivers: %v). %v", drivers.Names(), err)
		os.Exit(1)
	}

	if err = iface.Open(); err != nil {
		log.With(logger.Fields{"module": "dmx"}).Errorf("failed to open driver %s: %v", cfg.Driver.Name, err)
		os.Exit(1)
	}
	log.With(logger.Fields{"module": "dmx"}).Debugf("driver %s opened ok", cfg.Driver.Name)

	client := clientmqtt.NewClient(log, ConvertConfigClientMQTT(cfg.MQTT))
	log.With(logger.Fields{"module": "mqtt"}).Debug("NewClient created ok")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	// Channel command batches from the broker to the send loop.
	commands := make(chan clientmqtt.Payload, 10)

	if err = client.Start(ctx, commands); err != nil {
		log.Error("failed to start MQTT service:", err.Error())
		cancel()
	}

	go sendLoop(ctx, cancel, log, iface, commands)

	<-ctx.Done()

	if err := client.Stop(); err != nil {
		log.Error("failed to stop MQTT service:", err.Error())
	}

	if err := iface.Close(); err != nil {
		log.Error("failed to close DMX driver:", err.Error())
	}

	close(commands)

	log.Info("shutdown complete")
}

// sendLoop applies command batches to the pending frame and pushes each
// update to the device. A driver that errors into the closed state stops
// the whole service rather than crash it.
func sendLoop(ctx context.Context, cancel context.CancelFunc, log logger.Logger, iface *dmx.Interface, commands <-chan clientmqtt.Payload) {
	frame := make([]byte, dmx.MaxAddress)
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-commands:
			for _, c := range payload {
				if c.Channel < dmx.MinAddress || c.Channel > dmx.MaxAddress {
					log.With(logger.Fields{"module": "dmx"}).Errorf("command for channel %d outside [%d, %d] ignored", c.Channel, dmx.MinAddress, dmx.MaxAddress)
					continue
				}
				frame[c.Channel-1] = c.Value
			}
			iface.SetFrame(frame)
			if err := iface.SendUpdate(); err != nil {
				log.With(logger.Fields{"module": "dmx"}).Errorf("frame write failed: %v", err)
				if iface.Driver().Closed() {
					log.With(logger.Fields{"module": "dmx"}).Error("driver closed, stopping the send loop")
					cancel()
					return
				}
			}
		}
	}
}

// ConvertConfigClientMQTT maps the config section onto the client settings.
func ConvertConfigClientMQTT(cfg config.MQTTConf) clientmqtt.MQTTConf {
	return clientmqtt.MQTTConf{
		ClientID: cfg.ClientID,
		Schema:   "tcp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Topic:    cfg.Topic,
		Qos:      cfg.Qos,
	}
}
