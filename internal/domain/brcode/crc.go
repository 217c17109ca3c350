package brcode

const crcPoly = 0x1021

// CRC16 computes CRC-16/CCITT-FALSE: poly 0x1021, init 0xFFFF, MSB first,
// no reflection and no final XOR.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

const hexUpper = "0123456789ABCDEF"

// crcHex formats crc as four upper-case, zero padded hex digits.
func crcHex(crc uint16) string {
	return string([]byte{
		hexUpper[crc>>12&0x0F],
		hexUpper[crc>>8&0x0F],
		hexUpper[crc>>4&0x0F],
		hexUpper[crc&0x0F],
	})
}
