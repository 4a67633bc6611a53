package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	authhttp "github.com/leoalmeida/desafio-fullstack/internal/clients/auth/http"
	beneficioshttp "github.com/leoalmeida/desafio-fullstack/internal/clients/beneficios/http"
	"github.com/leoalmeida/desafio-fullstack/internal/handlers/terminal"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/loading"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/logger"
	beneficiosuc "github.com/leoalmeida/desafio-fullstack/internal/usecases/beneficios"
	sessionuc "github.com/leoalmeida/desafio-fullstack/internal/usecases/session"
)

func main() {
	if err := initService(); err != nil {
		log.Fatal(err)
	}
}

func initService() error {
	ctx := context.Background()

	initValues, err := initFlags()
	if err != nil {
		return err
	}

	sugarLogger, err := logger.New(initValues.logPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = sugarLogger.Sync()
	}()

	ctx = logger.ToContext(ctx, sugarLogger)

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return err
	}

	storage, err := sessionuc.NewFile(filepath.Join(cacheDir, "beneficios-console", "session.json"))
	if err != nil {
		return err
	}

	sessionStore := sessionuc.NewImplementation(storage)

	beneficiosURL, err := url.Parse(initValues.beneficiosAPI)
	if err != nil {
		return err
	}

	authURL, err := url.Parse(initValues.authAPI)
	if err != nil {
		return err
	}

	// Timeout explícito: sem ele uma requisição pendurada deixaria o
	// indicador de loading ligado para sempre.
	httpClient := &http.Client{Timeout: initValues.httpTimeout}

	beneficiosClient := beneficioshttp.NewClient(httpClient, *beneficiosURL, sessionStore)
	authClient := authhttp.NewClient(httpClient, *authURL)

	loadingSignal := loading.NewSignal()
	listStore := beneficiosuc.NewImplementation(beneficiosClient, loadingSignal, sessionStore)

	spinner := terminal.NewSpinner(loadingSignal, os.Stderr)
	spinner.Start()
	defer spinner.Stop()

	handler := terminal.New(sessionStore, authClient, listStore, os.Stdout)

	return handler.Run(ctx)
}
