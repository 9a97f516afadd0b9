package accel

import "sync"

// Model emulates the register interface of an ADXL362 on an SPI bus. It
// implements drivers.SPI and also acts as the chip select pin, so it can be
// passed to New in place of real hardware (in the simulator and in tests).
//
// The acceleration values are only visible once the sensor has been put into
// measurement mode, and a soft reset returns all registers to zero. A read
// returns the values as they were when the transaction started, like the data
// registers of the real sensor during a burst read.
type Model struct {
	lock     sync.Mutex
	regs     [0x40]uint8
	selected bool
	pos      int // byte index within the current transaction
	cmd      uint8
	addr     uint8

	x, y, z, t int16
	sample     [4]int16 // values latched at the start of a read
}

// SetAcceleration sets the values that are returned for the three axes.
func (m *Model) SetAcceleration(x, y, z int16) {
	m.lock.Lock()
	m.x, m.y, m.z = x, y, z
	m.lock.Unlock()
}

// SetTemperature sets the raw value of the temperature sensor.
func (m *Model) SetTemperature(t int16) {
	m.lock.Lock()
	m.t = t
	m.lock.Unlock()
}

// Measuring returns whether the sensor was put in measurement mode.
func (m *Model) Measuring() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.regs[regPowerCtl]&powerModeMask == powerMeasuring
}

// Set implements the chip select pin. A transaction starts when the pin goes
// low.
func (m *Model) Set(high bool) {
	m.lock.Lock()
	m.selected = !high
	m.pos = 0
	m.lock.Unlock()
}

// Tx implements drivers.SPI.
func (m *Model) Tx(w, r []byte) error {
	n := len(w)
	if len(r) > n {
		n = len(r)
	}
	for i := 0; i < n; i++ {
		var b byte
		if i < len(w) {
			b = w[i]
		}
		v, _ := m.Transfer(b)
		if i < len(r) {
			r[i] = v
		}
	}
	return nil
}

// Transfer implements drivers.SPI.
func (m *Model) Transfer(b byte) (byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.selected {
		return 0xff, nil
	}
	pos := m.pos
	m.pos++
	switch pos {
	case 0:
		m.cmd = b
		return 0, nil
	case 1:
		m.addr = b
		if m.cmd == cmdRead {
			m.sample = [4]int16{m.x, m.y, m.z, m.t}
		}
		return 0, nil
	}
	addr := m.addr
	m.addr++
	switch m.cmd {
	case cmdRead:
		return m.register(addr), nil
	case cmdWrite:
		m.write(addr, b)
	}
	return 0, nil
}

func (m *Model) register(addr uint8) uint8 {
	if int(addr) >= len(m.regs) {
		return 0
	}
	if addr >= regXDataL && addr < regXDataL+8 && m.regs[regPowerCtl]&powerModeMask == powerMeasuring {
		v := uint16(m.sample[(addr-regXDataL)/2])
		if (addr-regXDataL)%2 == 0 {
			return uint8(v)
		}
		return uint8(v >> 8)
	}
	return m.regs[addr]
}

func (m *Model) write(addr, value uint8) {
	if int(addr) >= len(m.regs) {
		return
	}
	if addr == regSoftReset {
		if value == softResetCode {
			m.regs = [0x40]uint8{}
		}
		return
	}
	m.regs[addr] = value
}
