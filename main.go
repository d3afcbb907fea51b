package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/alecthomas/kingpin.v2"

	"git.hub.com/wangyl/KYMUX_RELAY/Global"
	"git.hub.com/wangyl/KYMUX_RELAY/app"
	"git.hub.com/wangyl/KYMUX_RELAY/pkg/Logger"
)

func main() {
	a := kingpin.New(filepath.Base(os.Args[0]), "kymux stream relay")
	a.HelpFlag.Short('h')
	a.Flag("config", "config path").Short('c').StringVar(&Global.ConfigPath)
	codec := a.Flag("codec", "codec tag announced during handshake").String()

	fileCmd := a.Command("file", "relay a recorded stream file to a kymux endpoint")
	fileInput := fileCmd.Arg("input", "recorded stream file").Required().String()
	fileUrl := fileCmd.Arg("url", "destination, e.g kymux://127.0.0.1:1234/2e").Required().String()

	socketCmd := a.Command("socket", "accept one upstream stream socket and relay it to a kymux endpoint")
	socketListen := socketCmd.Arg("listen", "upstream listen address, e.g :7007").Required().String()
	socketUrl := socketCmd.Arg("url", "destination kymux url").Required().String()

	rawCmd := a.Command("raw", "relay a recorded stream file to a raw channel-multiplexed listener")
	rawInput := rawCmd.Arg("input", "recorded stream file").Required().String()
	rawAddr := rawCmd.Arg("addr", "destination host:port").Required().String()

	wideCmd := a.Command("wide", "relay a recorded stream file to a kymux endpoint with a 64-bit id")
	wideInput := wideCmd.Arg("input", "recorded stream file").Required().String()
	wideUrl := wideCmd.Arg("url", "destination kymux url with a 64-bit hex endpoint").Required().String()

	cmd, err := a.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "init flag fail: "+err.Error())
		os.Exit(-1)
	}
	//init config
	if err := Global.GlobalInit(); err != nil {
		fmt.Fprintln(os.Stderr, "init config fail: "+err.Error())
		os.Exit(-1)
	}

	cfg := app.RelayConfig{Codec: *codec}
	switch cmd {
	case fileCmd.FullCommand():
		cfg.Variant = app.FileToEndpoint
		cfg.InputPath = *fileInput
		cfg.DestUrl = *fileUrl
	case socketCmd.FullCommand():
		cfg.Variant = app.SocketToEndpoint
		cfg.ListenAddr = *socketListen
		cfg.DestUrl = *socketUrl
	case rawCmd.FullCommand():
		cfg.Variant = app.FileToRaw
		cfg.InputPath = *rawInput
		cfg.DestUrl = *rawAddr
	case wideCmd.FullCommand():
		cfg.Variant = app.FileToWideEndpoint
		cfg.InputPath = *wideInput
		cfg.DestUrl = *wideUrl
	}

	var relayService app.RelayService
	if err := relayService.Init(cfg); err != nil {
		Logger.GetLogger().Error("init relay fail: " + err.Error())
		os.Exit(-1)
	}

	done := make(chan error, 1)
	go func() {
		done <- relayService.StartWork()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	select {
	case err := <-done:
		if err != nil {
			os.Exit(1)
		}
	case <-quit:
		relayService.Stop()
		<-done
	}
}
