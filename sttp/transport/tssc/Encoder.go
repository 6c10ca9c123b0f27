//******************************************************************************************************
//  Encoder.go - Gbtc
//
//  Copyright © 2021, Grid Protection Alliance.  All Rights Reserved.
//
//  Licensed to the Grid Protection Alliance (GPA) under one or more contributor license agreements. See
//  the NOTICE file distributed with this work for additional information regarding copyright ownership.
//  The GPA licenses this file to you under the MIT License (MIT), the "License"; you may not use this
//  file except in compliance with the License. You may obtain a copy of the License at:
//
//      http://opensource.org/licenses/MIT
//
//  Unless agreed to in writing, the subject software distributed under the License is distributed on an
//  "AS-IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. Refer to the
//  License for the specific language governing permissions and limitations.
//
//  Code Modification History:
//  ----------------------------------------------------------------------------------------------------
//  12/02/2016 - Steven E. Chisholm
//       Generated original version of source code.
//  09/20/2021 - J. Ritchie Carroll
//       Migrated code to Go.
//
//******************************************************************************************************

package tssc

import (
	"encoding/binary"
	"math"
)

// blockVersion is the version byte written at the start of every encoded block.
const blockVersion byte = 0

// reserveBytes is the free space TryAdd requires before adding a measurement. One measurement
// adds at most 27 bytes: up to four code words of at most 8 bits each plus the 4-bit point ID
// and value nibbles (5 bytes of bit stream), and at most 4 bytes of point ID, 9 bytes of
// timestamp varint, 5 bytes of state-flags varint and 4 bytes of value payload. The rest
// leaves room for the end-of-stream code that FinishBlock writes.
const reserveBytes = 32

// Encoder is the encoder for the Time-Series Special Compression (TSSC) algorithm of STTP.
// It is the write-side dual of Decoder, sharing the same code-word table, bit-packing layout,
// and delta-prediction state machine so that a Decoder fed an Encoder's output reconstructs
// the original measurements exactly.
type Encoder struct {
	data     []byte
	position int

	prevTimestamp1 int64
	prevTimestamp2 int64

	prevTimeDelta1 int64
	prevTimeDelta2 int64
	prevTimeDelta3 int64
	prevTimeDelta4 int64

	lastPoint *pointMetadata
	points    map[int32]*pointMetadata

	// The number of bits in bitStreamCache that are valid for the byte reserved at bitStreamPosition.
	bitStreamCount    int32
	bitStreamCache    int32
	bitStreamPosition int

	// SequenceNumber is the sequence used to synchronize encoding and decoding.
	SequenceNumber uint16
}

// NewEncoder creates a new TSSC encoder.
func NewEncoder() *Encoder {
	te := &Encoder{}
	te.Reset()
	return te
}

// Reset re-initializes internal encoder state, discarding every point's prediction history
// and rewinding the sequence number to zero. This must be performed on every (re)subscribe,
// since the decoder on the other side is reset as well.
func (te *Encoder) Reset() {
	te.prevTimestamp1 = 0
	te.prevTimestamp2 = 0
	te.prevTimeDelta1 = math.MaxInt64
	te.prevTimeDelta2 = math.MaxInt64
	te.prevTimeDelta3 = math.MaxInt64
	te.prevTimeDelta4 = math.MaxInt64
	te.points = make(map[int32]*pointMetadata)
	te.lastPoint = te.newPointMetadata()
	te.SequenceNumber = 0
}

func (te *Encoder) newPointMetadata() *pointMetadata {
	return newPointMetadata(te.writeBits, nil, nil)
}

func (te *Encoder) clearBitStream() {
	te.bitStreamCount = 0
	te.bitStreamCache = 0
}

// SetBuffer assigns the working buffer to use for encoding the next block, writes the block
// header (version byte and sequence number), and advances the sequence number for the block
// that will follow. The sequence number wraps from 65535 back to 1, skipping zero, since zero
// is reserved for the first block emitted after a Reset.
func (te *Encoder) SetBuffer(data []byte) {
	te.clearBitStream()
	te.data = data
	te.position = 0

	te.data[te.position] = blockVersion
	te.position++

	binary.BigEndian.PutUint16(te.data[te.position:], te.SequenceNumber)
	te.position += 2

	te.SequenceNumber++

	if te.SequenceNumber == 0 {
		te.SequenceNumber = 1
	}
}

// FinishBlock appends the end-of-stream code to the working buffer and returns the number of
// bytes written. The caller emits data[:byteCount] and starts a new block with SetBuffer.
func (te *Encoder) FinishBlock() (int, error) {
	if err := te.lastPoint.WriteCode(int32(codeWords.EndOfStream)); err != nil {
		return 0, err
	}

	return te.position, nil
}

// TryAdd attempts to add another measurement to the current block. It returns false, with no
// error and no change to the working buffer, when the remaining space cannot safely hold the
// worst-case encoding of one measurement; the caller should then call FinishBlock, emit the
// block, and start a new one with SetBuffer.
//gocyclo:ignore
func (te *Encoder) TryAdd(id int32, timestamp int64, stateFlags uint32, value float32) (bool, error) {
	if len(te.data)-te.position < reserveBytes {
		return false, nil
	}

	nextPoint, ok := te.points[id]

	if !ok {
		nextPoint = te.newPointMetadata()
		te.points[id] = nextPoint
		nextPoint.PrevNextPointID1 = id + 1
	}

	idChanged := id != te.lastPoint.PrevNextPointID1
	timeChanged := timestamp != te.prevTimestamp1
	stateFlagsChanged := stateFlags != nextPoint.PrevStateFlags1

	var idCode, timeCode, stateFlagsCode int32
	var idExtra, timeExtra, stateFlagsExtra func()

	if idChanged {
		idCode, idExtra = te.encodePointID(uint32(id) ^ uint32(te.lastPoint.PrevNextPointID1))
	}

	if timeChanged {
		timeCode, timeExtra = te.encodeTimestamp(timestamp)
	}

	if stateFlagsChanged {
		if stateFlags == nextPoint.PrevStateFlags2 {
			stateFlagsCode = int32(codeWords.StateFlags2)
		} else {
			stateFlagsCode = int32(codeWords.StateFlags7Bit32)
			stateFlagsExtra = func() { encode7BitUInt32(te.data, &te.position, stateFlags) }
		}
	}

	// Value always participates at the terminal cascade level; it is the only field that
	// never delegates to a level below it, so its code and history update are unconditional.
	valueCode, valueExtra := te.encodeValue(math.Float32bits(value), nextPoint)

	type level struct {
		changed bool
		code    int32
		extra   func()
		apply   func()
	}

	levels := [4]level{
		{idChanged, idCode, idExtra, func() { te.lastPoint.PrevNextPointID1 = id }},
		{timeChanged, timeCode, timeExtra, func() { te.commitTimestamp(timestamp) }},
		{stateFlagsChanged, stateFlagsCode, stateFlagsExtra, func() {
			nextPoint.PrevStateFlags2 = nextPoint.PrevStateFlags1
			nextPoint.PrevStateFlags1 = stateFlags
		}},
		{true, valueCode, valueExtra, func() {}},
	}

	// A level's own code is only ever written when it is the first changed level starting
	// from the current cascade position; every level before it is implied unchanged by the
	// single code just written, and every explicit level mandates one more code for whatever
	// comes next, exactly mirroring Decoder.TryGetMeasurement's staged ReadCode calls.
	pos := 0

	for {
		lvl := pos

		for lvl < 3 && !levels[lvl].changed {
			lvl++
		}

		if err := te.lastPoint.WriteCode(levels[lvl].code); err != nil {
			return false, err
		}

		if levels[lvl].extra != nil {
			levels[lvl].extra()
		}

		levels[lvl].apply()

		if lvl == 3 {
			break
		}

		pos = lvl + 1
	}

	te.lastPoint = nextPoint

	return true, nil
}

func (te *Encoder) encodePointID(xor uint32) (int32, func()) {
	switch {
	case xor <= 0xF:
		return int32(codeWords.PointIDXor4), func() { te.writeBits(int32(xor), 4) }
	case xor <= 0xFF:
		return int32(codeWords.PointIDXor8), func() { te.writeRawByte(byte(xor)) }
	case xor <= 0xFFF:
		return int32(codeWords.PointIDXor12), func() {
			te.writeBits(int32(xor&0xF), 4)
			te.writeRawByte(byte(xor >> 4))
		}
	case xor <= 0xFFFF:
		return int32(codeWords.PointIDXor16), func() {
			te.writeRawByte(byte(xor))
			te.writeRawByte(byte(xor >> 8))
		}
	case xor <= 0xFFFFF:
		return int32(codeWords.PointIDXor20), func() {
			te.writeBits(int32(xor&0xF), 4)
			te.writeRawByte(byte(xor >> 4))
			te.writeRawByte(byte(xor >> 12))
		}
	case xor <= 0xFFFFFF:
		return int32(codeWords.PointIDXor24), func() {
			te.writeRawByte(byte(xor))
			te.writeRawByte(byte(xor >> 8))
			te.writeRawByte(byte(xor >> 16))
		}
	default:
		return int32(codeWords.PointIDXor32), func() {
			te.writeRawByte(byte(xor))
			te.writeRawByte(byte(xor >> 8))
			te.writeRawByte(byte(xor >> 16))
			te.writeRawByte(byte(xor >> 24))
		}
	}
}

//gocyclo:ignore
func (te *Encoder) encodeTimestamp(timestamp int64) (int32, func()) {
	diff := timestamp - te.prevTimestamp1

	switch {
	case diff == te.prevTimeDelta1:
		return int32(codeWords.TimeDelta1Forward), nil
	case diff == te.prevTimeDelta2:
		return int32(codeWords.TimeDelta2Forward), nil
	case diff == te.prevTimeDelta3:
		return int32(codeWords.TimeDelta3Forward), nil
	case diff == te.prevTimeDelta4:
		return int32(codeWords.TimeDelta4Forward), nil
	case -diff == te.prevTimeDelta1:
		return int32(codeWords.TimeDelta1Reverse), nil
	case -diff == te.prevTimeDelta2:
		return int32(codeWords.TimeDelta2Reverse), nil
	case -diff == te.prevTimeDelta3:
		return int32(codeWords.TimeDelta3Reverse), nil
	case -diff == te.prevTimeDelta4:
		return int32(codeWords.TimeDelta4Reverse), nil
	case timestamp == te.prevTimestamp2:
		return int32(codeWords.Timestamp2), nil
	default:
		xor := uint64(te.prevTimestamp1) ^ uint64(timestamp)
		return int32(codeWords.TimeXor7Bit), func() { encode7BitUInt64(te.data, &te.position, xor) }
	}
}

// commitTimestamp mirrors Decoder.decodeTimestamp's smallest-delta bookkeeping, run only when
// a timestamp is explicitly encoded.
func (te *Encoder) commitTimestamp(timestamp int64) {
	minDelta := abs(te.prevTimestamp1 - timestamp)

	if minDelta < te.prevTimeDelta4 && minDelta != te.prevTimeDelta1 && minDelta != te.prevTimeDelta2 && minDelta != te.prevTimeDelta3 {
		if minDelta < te.prevTimeDelta1 {
			te.prevTimeDelta4 = te.prevTimeDelta3
			te.prevTimeDelta3 = te.prevTimeDelta2
			te.prevTimeDelta2 = te.prevTimeDelta1
			te.prevTimeDelta1 = minDelta
		} else if minDelta < te.prevTimeDelta2 {
			te.prevTimeDelta4 = te.prevTimeDelta3
			te.prevTimeDelta3 = te.prevTimeDelta2
			te.prevTimeDelta2 = minDelta
		} else if minDelta < te.prevTimeDelta3 {
			te.prevTimeDelta4 = te.prevTimeDelta3
			te.prevTimeDelta3 = minDelta
		} else {
			te.prevTimeDelta4 = minDelta
		}
	}

	te.prevTimestamp2 = te.prevTimestamp1
	te.prevTimestamp1 = timestamp
}

//gocyclo:ignore
func (te *Encoder) encodeValue(valueRaw uint32, nextPoint *pointMetadata) (int32, func()) {
	switch {
	case valueRaw == nextPoint.PrevValue1:
		return int32(codeWords.Value1), nil
	case valueRaw == nextPoint.PrevValue2:
		nextPoint.PrevValue2 = nextPoint.PrevValue1
		nextPoint.PrevValue1 = valueRaw
		return int32(codeWords.Value2), nil
	case valueRaw == nextPoint.PrevValue3:
		nextPoint.PrevValue3 = nextPoint.PrevValue2
		nextPoint.PrevValue2 = nextPoint.PrevValue1
		nextPoint.PrevValue1 = valueRaw
		return int32(codeWords.Value3), nil
	case valueRaw == 0:
		nextPoint.PrevValue3 = nextPoint.PrevValue2
		nextPoint.PrevValue2 = nextPoint.PrevValue1
		nextPoint.PrevValue1 = valueRaw
		return int32(codeWords.ValueZero), nil
	}

	xor := valueRaw ^ nextPoint.PrevValue1
	nextPoint.PrevValue3 = nextPoint.PrevValue2
	nextPoint.PrevValue2 = nextPoint.PrevValue1
	nextPoint.PrevValue1 = valueRaw

	switch {
	case xor <= 0xF:
		return int32(codeWords.ValueXor4), func() { te.writeBits(int32(xor), 4) }
	case xor <= 0xFF:
		return int32(codeWords.ValueXor8), func() { te.writeRawByte(byte(xor)) }
	case xor <= 0xFFF:
		return int32(codeWords.ValueXor12), func() {
			te.writeBits(int32(xor&0xF), 4)
			te.writeRawByte(byte(xor >> 4))
		}
	case xor <= 0xFFFF:
		return int32(codeWords.ValueXor16), func() {
			te.writeRawByte(byte(xor))
			te.writeRawByte(byte(xor >> 8))
		}
	case xor <= 0xFFFFF:
		return int32(codeWords.ValueXor20), func() {
			te.writeBits(int32(xor&0xF), 4)
			te.writeRawByte(byte(xor >> 4))
			te.writeRawByte(byte(xor >> 12))
		}
	case xor <= 0xFFFFFF:
		return int32(codeWords.ValueXor24), func() {
			te.writeRawByte(byte(xor))
			te.writeRawByte(byte(xor >> 8))
			te.writeRawByte(byte(xor >> 16))
		}
	case xor <= 0xFFFFFFF:
		return int32(codeWords.ValueXor28), func() {
			te.writeBits(int32(xor&0xF), 4)
			te.writeRawByte(byte(xor >> 4))
			te.writeRawByte(byte(xor >> 12))
			te.writeRawByte(byte(xor >> 20))
		}
	default:
		return int32(codeWords.ValueXor32), func() {
			te.writeRawByte(byte(xor))
			te.writeRawByte(byte(xor >> 8))
			te.writeRawByte(byte(xor >> 16))
			te.writeRawByte(byte(xor >> 24))
		}
	}
}

// writeRawByte writes a byte directly at the current position, bypassing the bit cache, the
// same way Decoder reads raw bytes directly from td.data outside of readBit.
func (te *Encoder) writeRawByte(b byte) {
	te.data[te.position] = b
	te.position++
}

// writeBit mirrors Decoder.readBit in reverse: the byte backing the current bit cache is
// reserved (and position advanced past it) the moment the first bit of a fresh byte is
// written, exactly when Decoder.readBit would have pulled that byte from the stream.
func (te *Encoder) writeBit(bit int32) {
	if te.bitStreamCount == 0 {
		te.bitStreamCount = 8
		te.bitStreamCache = 0
		te.bitStreamPosition = te.position
		te.position++
	}

	te.bitStreamCount--

	if bit != 0 {
		te.bitStreamCache |= 1 << uint(te.bitStreamCount)
	}

	te.data[te.bitStreamPosition] = byte(te.bitStreamCache)
}

func (te *Encoder) writeBits(value int32, bitCount int32) {
	for i := bitCount - 1; i >= 0; i-- {
		te.writeBit((value >> uint(i)) & 1)
	}
}

func encode7BitUInt32(stream []byte, position *int, value uint32) {
	if value < 0x80 {
		stream[*position] = byte(value)
		*position++
		return
	}

	stream[*position] = byte(value) | 0x80
	value >>= 7

	if value < 0x80 {
		stream[*position+1] = byte(value)
		*position += 2
		return
	}

	stream[*position+1] = byte(value) | 0x80
	value >>= 7

	if value < 0x80 {
		stream[*position+2] = byte(value)
		*position += 3
		return
	}

	stream[*position+2] = byte(value) | 0x80
	value >>= 7

	if value < 0x80 {
		stream[*position+3] = byte(value)
		*position += 4
		return
	}

	stream[*position+3] = byte(value) | 0x80
	value >>= 7

	stream[*position+4] = byte(value)
	*position += 5
}

func encode7BitUInt64(stream []byte, position *int, value uint64) {
	for i := 0; i < 8; i++ {
		if value < 0x80 {
			stream[*position] = byte(value)
			*position++
			return
		}

		stream[*position] = byte(value) | 0x80
		value >>= 7
		*position++
	}

	stream[*position] = byte(value)
	*position++
}
