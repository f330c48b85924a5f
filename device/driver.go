// Package device holds the driver registry: the device-switch style table
// that binds a driver implementation (such as the console) to the rest of
// the system. Actually wiring a major/minor number to a syscall dispatch
// table is a kernel concern external to this module; what lives here is the
// bookkeeping every driver in the tree registers itself with.
package device

import (
	"io"
	"sort"

	"consoleos/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprint.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that scans for the presence of a particular
// piece of hardware and returns a driver for it.
type ProbeFn func() Driver

// DetectOrder controls the relative ordering in which drivers are
// initialized during boot.
type DetectOrder int

const (
	// DetectOrderEarly marks drivers that must be probed before ACPI is
	// available (e.g. the legacy VGA text console).
	DetectOrderEarly DetectOrder = iota

	// DetectOrderBeforeACPI marks drivers that should run before ACPI
	// but don't require DetectOrderEarly's guarantees.
	DetectOrderBeforeACPI

	// DetectOrderACPI marks drivers that depend on ACPI tables.
	DetectOrderACPI

	// DetectOrderLast marks drivers that should be probed last.
	DetectOrderLast
)

// DriverInfo associates a registered driver with the order it should be
// probed in.
type DriverInfo struct {
	Order  DetectOrder
	Driver Driver
}

// DriverInfoList is a sortable list of DriverInfo entries, ordered by Order.
type DriverInfoList []*DriverInfo

func (l DriverInfoList) Len() int           { return len(l) }
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }
func (l DriverInfoList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

var registeredDrivers DriverInfoList

// RegisterDriver adds info to the driver registry. The console registers
// itself through tty.Console.Register, which cmd/consoleterm calls at
// startup.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns every registered driver, unsorted. Callers that care
// about probe order should sort.Sort the result.
func DriverList() DriverInfoList {
	return registeredDrivers
}

var _ sort.Interface = DriverInfoList(nil)
