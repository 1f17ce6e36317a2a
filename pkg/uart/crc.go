package uart

const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// CRC16 computes CRC-16-CCITT over data.
func CRC16(data []byte) uint16 {
	return crcUpdate(crcInitial, data)
}

func crcUpdate(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
