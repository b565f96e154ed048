package types

import (
	errs "errors"
	"fmt"
	"os"

	"github.com/oliverisaac/goli"
)

type Config struct {
	Hostname     string
	ListenAddr   string
	DatabaseURL  string
	CookieSecret []byte
}

func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error

	databaseURL, ok := os.LookupEnv("DATABASE_URL")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env DATABASE_URL"))
	} else {
		ret.DatabaseURL = databaseURL
	}

	cookieSecret, ok := os.LookupEnv("PROMPTBASE_COOKIE_STORE_SECRET")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env PROMPTBASE_COOKIE_STORE_SECRET"))
	} else {
		ret.CookieSecret = []byte(cookieSecret)
	}

	ret.Hostname = goli.DefaultEnv("PROMPTBASE_HOSTNAME", "localhost")
	ret.ListenAddr = goli.DefaultEnv("PROMPTBASE_LISTEN_ADDR", ":8080")

	return ret, retErr
}
