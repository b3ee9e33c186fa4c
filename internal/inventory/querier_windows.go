//go:build windows

package inventory

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// wmiQuerier tolerates NULL columns by leaving fields at their zero value.
type wmiQuerier struct {
	client *wmi.Client
}

func platformQuerier() Querier {
	return wmiQuerier{client: &wmi.Client{NonePtrZero: true, PtrNil: true, AllowMissingFields: true}}
}

func (w wmiQuerier) Query(dst any) error {
	q := wmi.CreateQuery(dst, "")
	if err := w.client.Query(q, dst); err != nil {
		return fmt.Errorf("wmi %q: %w", q, err)
	}
	return nil
}
