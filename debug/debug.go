// Package debug turns on logging to stderr from the environment:
// SPLICE_DEBUG_PLAN, SPLICE_DEBUG_EDIT, SPLICE_DEBUG_STORE and
// SPLICE_DEBUG_RUN, or SPLICE_DEBUG for all of them.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Plan  bool
	Edit  bool
	Store bool
	Run   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Plan = boolEnv("SPLICE_DEBUG_PLAN")
	d.Edit = boolEnv("SPLICE_DEBUG_EDIT")
	d.Store = boolEnv("SPLICE_DEBUG_STORE")
	d.Run = boolEnv("SPLICE_DEBUG_RUN")
	if boolEnv("SPLICE_DEBUG") {
		*d = debug{Plan: true, Edit: true, Store: true, Run: true}
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Plan() bool {
	return d.Plan
}
func Edit() bool {
	return d.Edit
}
func Store() bool {
	return d.Store
}
func Run() bool {
	return d.Run
}
