package accel

import (
	"tinygo.org/x/drivers"
)

// SPI instructions and registers of the ADXL362.
const (
	cmdWrite = 0x0A
	cmdRead  = 0x0B

	regXDataL    = 0x0E // X, Y, Z and temperature, 16 bits each, little endian
	regSoftReset = 0x1F
	regPowerCtl  = 0x2D

	softResetCode  = 0x52
	powerModeMask  = 0b11
	powerMeasuring = 0b10
)

// Pin is the chip select line of the sensor. machine.Pin implements it.
type Pin interface {
	Set(high bool)
}

// bus wraps the SPI bus and chip select pin of a single ADXL362. Bus errors
// are not reported: a failed read leaves the previous values in place.
type bus struct {
	spi drivers.SPI
	cs  Pin
	tx  [10]byte
	rx  [10]byte
}

func (b *bus) transfer(n int) error {
	b.cs.Set(false)
	err := b.spi.Tx(b.tx[:n], b.rx[:n])
	b.cs.Set(true)
	return err
}

func (b *bus) read8(reg uint8) uint8 {
	b.tx[0] = cmdRead
	b.tx[1] = reg
	b.tx[2] = 0
	if err := b.transfer(3); err != nil {
		return 0
	}
	return b.rx[2]
}

func (b *bus) write8(reg, value uint8) {
	b.tx[0] = cmdWrite
	b.tx[1] = reg
	b.tx[2] = value
	b.transfer(3)
}

// readXYZT reads all three axes and the temperature in a single burst.
func (b *bus) readXYZT() (x, y, z, t int16, ok bool) {
	b.tx[0] = cmdRead
	b.tx[1] = regXDataL
	for i := 2; i < len(b.tx); i++ {
		b.tx[i] = 0
	}
	if err := b.transfer(len(b.tx)); err != nil {
		return 0, 0, 0, 0, false
	}
	data := b.rx[2:]
	x = int16(uint16(data[0]) | uint16(data[1])<<8)
	y = int16(uint16(data[2]) | uint16(data[3])<<8)
	z = int16(uint16(data[4]) | uint16(data[5])<<8)
	t = int16(uint16(data[6]) | uint16(data[7])<<8)
	return x, y, z, t, true
}
