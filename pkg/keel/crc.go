// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package keel

// CRC8 computes the CRC-8 checksum (polynomial 0x07, initial value 0x00,
// MSB first) for the given data. The bench firmware computes the same
// checksum over header and payload and rejects mismatching frames.
func CRC8(data []byte) byte {
	crc := byte(crcInitial)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
