package models

import (
	"fmt"
	"net/url"
)

type Credential struct {
	Host         string
	Username     string
	Password     string
	DatabaseName string
	Port         int
}

// DSN is the key/value form understood by lib/pq.
func (c Credential) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.Host, c.Username, c.Password, c.DatabaseName, c.Port,
	)
}

// URL is the form golang-migrate expects.
func (c Credential) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DatabaseName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
