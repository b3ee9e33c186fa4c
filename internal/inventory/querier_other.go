//go:build !windows

package inventory

type unavailableQuerier struct{}

func platformQuerier() Querier { return unavailableQuerier{} }

func (unavailableQuerier) Query(any) error { return ErrUnavailable }
