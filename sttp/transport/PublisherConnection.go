//******************************************************************************************************
//  PublisherConnection.go - Gbtc
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
//  09/09/2021 - J. Ritchie Carroll
//       Generated original version of source code.
//
//******************************************************************************************************

package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tevino/abool/v2"

	"github.com/sttp/goapi/sttp/data"
	"github.com/sttp/goapi/sttp/guid"
	"github.com/sttp/goapi/sttp/ticks"
	"github.com/sttp/goapi/sttp/transport/tssc"
)

const (
	// baseTimeRotationInterval defines how often the active base-time offset slot is rotated
	// to keep compact measurement timestamp deltas small.
	baseTimeRotationInterval = 8 * time.Hour

	// noOPPingInterval defines the period of command channel inactivity that triggers a keep-alive ping.
	noOPPingInterval = 5 * time.Second
)

// PublisherConnection represents a single DataSubscriber's connection to a Publisher. It negotiates
// operational modes, parses subscription requests, maintains a per-connection SignalIndexCache and
// TSSC encoder, and serializes measurements for delivery back down the command channel.
type PublisherConnection struct {
	publisher    *Publisher
	conn         net.Conn
	subscriberID guid.Guid
	connectionID string

	encoding    OperationalEncodingEnum
	compression CompressionModesEnum
	version     uint32

	receiveExternalMetadata bool
	receiveInternalMetadata bool
	compressPayloadData     bool
	compressSignalIndexCache bool
	compressMetadata        bool

	operationalModesMutex sync.RWMutex

	subscription     SubscriptionInfo
	signalIndexCache *SignalIndexCache
	tsscEncoder      *tssc.Encoder
	useCompactMeasurementFormat bool

	subscribed abool.AtomicBool
	connected  abool.AtomicBool
	disposing  abool.AtomicBool

	baseTimeOffsets [2]int64
	timeIndex       int32

	writeMutex sync.Mutex
	lastSend   time.Time

	publishTimer *time.Timer
	latestValues map[int32]Measurement
	latestMutex  sync.Mutex

	// StatusMessageCallback, when assigned, is invoked with informational status messages.
	StatusMessageCallback func(string)
	// ErrorMessageCallback, when assigned, is invoked with error messages raised while servicing this connection.
	ErrorMessageCallback func(string)
}

func newPublisherConnection(publisher *Publisher, conn net.Conn) *PublisherConnection {
	return &PublisherConnection{
		publisher:    publisher,
		conn:         conn,
		connectionID: resolveDNSName(conn.RemoteAddr().String()),
		encoding:     OperationalEncoding.UTF8,
		latestValues: make(map[int32]Measurement),
	}
}

// SubscriberID returns the unique identifier assigned to this connection by its subscribe request.
func (pc *PublisherConnection) SubscriberID() guid.Guid {
	return pc.subscriberID
}

// ConnectionID returns the resolved remote address of this connection, used for status and error messages.
func (pc *PublisherConnection) ConnectionID() string {
	return pc.connectionID
}

// IsSubscribed determines if this connection currently has an active subscription.
func (pc *PublisherConnection) IsSubscribed() bool {
	return pc.subscribed.IsSet()
}

// run is the per-connection command channel read loop; it executes on its own goroutine for the
// lifetime of the TCP connection, dispatching each received command until the connection fails or closes.
func (pc *PublisherConnection) run() {
	pc.connected.Set()
	pc.dispatchStatusMessage(fmt.Sprintf("client \"%s\" connected", pc.connectionID))

	go pc.maintainConnection()

	defer pc.disconnect()

	for pc.disposing.IsNotSet() {
		command, payload, err := pc.readCommandFrame()

		if err != nil {
			if pc.disposing.IsNotSet() && err != io.EOF {
				pc.dispatchErrorMessage(fmt.Sprintf("failure reading command channel for \"%s\": %s", pc.connectionID, err.Error()))
			}
			return
		}

		pc.dispatch(command, payload)
	}
}

// maintainConnection runs for the lifetime of the connection, issuing a keep-alive NoOP ping when the
// command channel has been idle and periodically rotating the connection's base-time offsets.
func (pc *PublisherConnection) maintainConnection() {
	ticker := time.NewTicker(noOPPingInterval)
	defer ticker.Stop()

	rotation := time.NewTimer(baseTimeRotationInterval)
	defer rotation.Stop()

	for pc.disposing.IsNotSet() {
		select {
		case <-ticker.C:
			pc.sendNoOpPing()
		case <-rotation.C:
			if pc.subscribed.IsSet() {
				pc.rotateBaseTimes()
			}
			rotation.Reset(baseTimeRotationInterval)
		}
	}
}

// readCommandFrame reads a single [4-byte length][1-byte command][payload] frame from the command channel.
func (pc *PublisherConnection) readCommandFrame() (ServerCommandEnum, []byte, error) {
	lengthBuffer := make([]byte, payloadHeaderSize)

	if _, err := io.ReadFull(pc.conn, lengthBuffer); err != nil {
		return 0, nil, err
	}

	length := binary.BigEndian.Uint32(lengthBuffer)

	if length == 0 || length > maxPacketSize {
		return 0, nil, fmt.Errorf("received invalid command frame length: %d", length)
	}

	frame := make([]byte, length)

	if _, err := io.ReadFull(pc.conn, frame); err != nil {
		return 0, nil, err
	}

	return ServerCommandEnum(frame[0]), frame[1:], nil
}

// dispatch routes a decoded command to its handler, responding with Failed if the command is unsupported
// or its handler returns an error.
func (pc *PublisherConnection) dispatch(command ServerCommandEnum, payload []byte) {
	var err error

	switch command {
	case ServerCommand.DefineOperationalModes:
		err = pc.handleDefineOperationalModes(payload)
	case ServerCommand.Subscribe:
		err = pc.handleSubscribe(payload)
	case ServerCommand.Unsubscribe:
		err = pc.handleUnsubscribe()
	case ServerCommand.MetadataRefresh:
		err = pc.handleMetadataRefresh(payload)
	case ServerCommand.RotateCipherKeys:
		err = pc.handleRotateCipherKeys()
	case ServerCommand.UpdateProcessingInterval:
		err = pc.handleUpdateProcessingInterval(payload)
	case ServerCommand.ConfirmNotification:
		// Acknowledgment only, nothing further to do.
	case ServerCommand.ConfirmBufferBlock:
		// Acknowledgment only, nothing further to do.
	case ServerCommand.ConfirmSignalIndexCache:
		// Acknowledgment that client has transitioned to the latest signal index cache.
	case ServerCommand.UserCommand00, ServerCommand.UserCommand01, ServerCommand.UserCommand02, ServerCommand.UserCommand03,
		ServerCommand.UserCommand04, ServerCommand.UserCommand05, ServerCommand.UserCommand06, ServerCommand.UserCommand07,
		ServerCommand.UserCommand08, ServerCommand.UserCommand09, ServerCommand.UserCommand10, ServerCommand.UserCommand11,
		ServerCommand.UserCommand12, ServerCommand.UserCommand13, ServerCommand.UserCommand14, ServerCommand.UserCommand15:
		err = pc.handleUserCommand(command, payload)
	default:
		err = fmt.Errorf("encountered unrecognized server command: 0x%02X", byte(command))
	}

	if err != nil {
		pc.sendFailed(command, err.Error())
		pc.dispatchErrorMessage(fmt.Sprintf("command 0x%02X from \"%s\" failed: %s", byte(command), pc.connectionID, err.Error()))
		return
	}
}

// handleDefineOperationalModes decodes the 4-byte OperationalModes bit field a subscriber sends immediately
// after connecting, and must be processed before any other command is accepted.
func (pc *PublisherConnection) handleDefineOperationalModes(payload []byte) error {
	if len(payload) < 4 {
		return errors.New("not enough buffer provided to parse operational modes")
	}

	modes := OperationalModesEnum(binary.BigEndian.Uint32(payload))

	pc.operationalModesMutex.Lock()

	pc.version = uint32(modes & OperationalModes.ServerResponseEnumVersionMask)
	pc.encoding = OperationalEncodingEnum(modes & OperationalModes.ServerResponseEnumEncodingMask)
	pc.receiveExternalMetadata = modes&OperationalModes.ServerResponseEnumReceiveExternalMetadata != 0
	pc.receiveInternalMetadata = modes&OperationalModes.ServerResponseEnumReceiveInternalMetadata != 0
	pc.compressPayloadData = modes&OperationalModes.ServerResponseEnumCompressPayloadData != 0
	pc.compressSignalIndexCache = modes&OperationalModes.ServerResponseEnumCompressSignalIndexCache != 0
	pc.compressMetadata = modes&OperationalModes.ServerResponseEnumCompressMetadata != 0

	compressionMode := CompressionModesEnum(modes & OperationalModes.ServerResponseEnumCompressionModeMask)

	if pc.compressPayloadData && compressionMode == CompressionModes.TSSC {
		pc.compression = CompressionModes.TSSC
		pc.tsscEncoder = tssc.NewEncoder()
	} else if pc.compressPayloadData {
		pc.compression = CompressionModes.GZip
	} else {
		pc.compression = CompressionModes.None
	}

	pc.operationalModesMutex.Unlock()

	return nil
}

// handleSubscribe processes a subscription request: parses the connection string, resolves the requested
// measurements against publisher metadata, rebuilds this connection's signal index cache, registers its
// routes with the Publisher, and replies with the signal index cache, base times, and start time the
// subscriber needs before data begins flowing.
func (pc *PublisherConnection) handleSubscribe(payload []byte) error {
	if len(payload) < 5 {
		return errors.New("not enough buffer provided to parse subscribe request")
	}

	usesCompactFormat := payload[0]&0x01 != 0
	connectionStringLength := binary.BigEndian.Uint32(payload[1:5])

	if uint32(len(payload)-5) < connectionStringLength {
		return errors.New("not enough buffer provided to parse subscribe connection string")
	}

	connectionString := pc.DecodeString(payload[5:5+connectionStringLength], connectionStringLength)
	settings := parseKeyValuePairs(connectionString)

	subscription := newSubscriptionInfoFromSettings(settings)
	filterExpression := subscription.FilterExpression

	if len(filterExpression) == 0 {
		return errors.New("subscribe request did not specify a filter expression")
	}

	signalIDs, err := data.SelectSignalIDSet(pc.publisher.Metadata, filterExpression, pc.publisher.MetadataTableName)

	if err != nil {
		return fmt.Errorf("failed to evaluate filter expression: %s", err.Error())
	}

	cache := NewSignalIndexCache()
	var signalIndex int32

	for _, signalID := range signalIDs.Keys() {
		source, id := pc.publisher.lookupMeasurementKey(signalID)
		cache.addPublisherRecord(signalIndex, signalID, source, id)
		signalIndex++
	}

	pc.operationalModesMutex.Lock()
	pc.subscription = subscription
	pc.signalIndexCache = cache
	pc.useCompactMeasurementFormat = usesCompactFormat

	if pc.tsscEncoder != nil {
		pc.tsscEncoder.Reset()
	}

	pc.operationalModesMutex.Unlock()

	pc.publisher.updateRoutes(pc, signalIDs)
	pc.subscribed.Set()

	pc.initializeBaseTimes()

	if err := pc.sendSignalIndexCache(); err != nil {
		return err
	}

	if err := pc.sendUpdateBaseTimes(); err != nil {
		return err
	}

	if err := pc.sendResponse(ServerResponse.DataStartTime, ServerCommand.Subscribe, encodeTicks(ticks.FromTime(time.Now()))); err != nil {
		return err
	}

	if subscription.Throttled {
		pc.startPublishTimer()
	}

	return pc.sendSucceeded(ServerCommand.Subscribe, fmt.Sprintf("subscription accepted, %d signals matched", len(signalIDs)))
}

// handleUnsubscribe tears down the active subscription and removes this connection from the routing table.
func (pc *PublisherConnection) handleUnsubscribe() error {
	pc.subscribed.UnSet()
	pc.publisher.updateRoutes(pc, nil)
	pc.stopPublishTimer()
	return pc.sendSucceeded(ServerCommand.Unsubscribe, "unsubscribed")
}

// handleMetadataRefresh serializes the publisher's metadata DataSet, optionally filtered by the connection's
// requested filter expression, compressing it when the subscriber has negotiated metadata compression.
func (pc *PublisherConnection) handleMetadataRefresh(payload []byte) error {
	filterExpression := ""

	if len(payload) >= 4 {
		length := binary.BigEndian.Uint32(payload)

		if uint32(len(payload)-4) >= length {
			filterExpression = pc.DecodeString(payload[4:4+length], length)
		}
	}

	metadata := pc.publisher.Metadata

	if len(filterExpression) > 0 {
		filtered, err := filterMetadataTable(metadata, pc.publisher.MetadataTableName, filterExpression)

		if err != nil {
			return fmt.Errorf("failed to evaluate metadata filter expression: %s", err.Error())
		}

		metadata = filtered
	}

	serialized := metadata.WriteXml(pc.publisher.MetadataTableName)

	if pc.compressMetadata {
		compressed, err := compressGZip(serialized)

		if err != nil {
			return fmt.Errorf("failed to compress metadata: %s", err.Error())
		}

		serialized = compressed
	}

	return pc.sendResponse(ServerResponse.Succeeded, ServerCommand.MetadataRefresh, append([]byte{byte(ServerCommand.MetadataRefresh)}, serialized...))
}

// handleRotateCipherKeys acknowledges a cipher key rotation request. UDP data channel encryption is not
// implemented by this publisher, so no keys are actually rotated.
func (pc *PublisherConnection) handleRotateCipherKeys() error {
	return pc.sendSucceeded(ServerCommand.RotateCipherKeys, "cipher key rotation is not supported for TCP-only delivery")
}

// handleUpdateProcessingInterval updates the connection's temporal playback processing interval. Live,
// non-historical subscriptions ignore the new value beyond acknowledging the request.
func (pc *PublisherConnection) handleUpdateProcessingInterval(payload []byte) error {
	if len(payload) < 4 {
		return errors.New("not enough buffer provided to parse processing interval")
	}

	pc.operationalModesMutex.Lock()
	pc.subscription.ProcessingInterval = int32(binary.BigEndian.Uint32(payload))
	pc.operationalModesMutex.Unlock()

	return pc.sendSucceeded(ServerCommand.UpdateProcessingInterval, "processing interval updated")
}

// handleUserCommand acknowledges a user-defined command code. Publisher deployments that need custom
// protocol extensions can replace this with their own dispatch.
func (pc *PublisherConnection) handleUserCommand(command ServerCommandEnum, payload []byte) error {
	response := ServerResponse.UserResponse00 + ServerResponseEnum(command-ServerCommand.UserCommand00)
	return pc.sendResponse(response, command, payload)
}

// initializeBaseTimes seeds the first base-time offset slot with the current time so the first published
// measurements can use the compact 2 or 4-byte timestamp encodings. The second slot is set to zero, which
// Marshal skips, until rotateBaseTimes fills it; no next base is advertised ahead of a rotation.
func (pc *PublisherConnection) initializeBaseTimes() {
	now := int64(ticks.FromTime(time.Now()))

	pc.operationalModesMutex.Lock()
	pc.baseTimeOffsets[0] = now
	pc.baseTimeOffsets[1] = 0
	pc.timeIndex = 0
	pc.operationalModesMutex.Unlock()
}

// rotateBaseTimes publishes a fresh base-time offset into the inactive slot and flips the active slot,
// bounding how far compact measurement timestamp deltas can drift from their base.
func (pc *PublisherConnection) rotateBaseTimes() {
	now := int64(ticks.FromTime(time.Now()))
	nextIndex := (pc.timeIndex + 1) % 2

	pc.operationalModesMutex.Lock()
	pc.baseTimeOffsets[nextIndex] = now
	pc.timeIndex = nextIndex
	pc.operationalModesMutex.Unlock()

	if err := pc.sendUpdateBaseTimes(); err != nil {
		pc.dispatchErrorMessage(fmt.Sprintf("failed to send updated base times to \"%s\": %s", pc.connectionID, err.Error()))
	}
}

func (pc *PublisherConnection) sendUpdateBaseTimes() error {
	pc.operationalModesMutex.RLock()
	payload := make([]byte, 4+16)
	binary.BigEndian.PutUint32(payload, uint32(pc.timeIndex))
	binary.BigEndian.PutUint64(payload[4:], uint64(pc.baseTimeOffsets[0]))
	binary.BigEndian.PutUint64(payload[12:], uint64(pc.baseTimeOffsets[1]))
	pc.operationalModesMutex.RUnlock()

	return pc.sendResponse(ServerResponse.UpdateBaseTimes, ServerCommand.Subscribe, payload)
}

func (pc *PublisherConnection) sendSignalIndexCache() error {
	pc.operationalModesMutex.RLock()
	cache := pc.signalIndexCache
	pc.operationalModesMutex.RUnlock()

	if cache == nil {
		return errors.New("no signal index cache available to send")
	}

	encoded := cache.Encode(pc, pc.subscriberID)

	if pc.compressSignalIndexCache {
		compressed, err := compressGZip(encoded)

		if err != nil {
			return fmt.Errorf("failed to compress signal index cache: %s", err.Error())
		}

		encoded = compressed
	}

	return pc.sendResponse(ServerResponse.UpdateSignalIndexCache, ServerCommand.Subscribe, encoded)
}

// startPublishTimer begins the throttled publication loop: on every tick, the latest cached value for
// each subscribed signal is flushed to the subscriber, down-sampling whatever arrived in the interim.
func (pc *PublisherConnection) startPublishTimer() {
	interval := time.Duration(pc.subscription.PublishInterval * float64(time.Second))

	if interval <= 0 {
		interval = time.Duration(defaultPublishInterval * float64(time.Second))
	}

	pc.publishTimer = time.AfterFunc(interval, pc.flushThrottled)
}

func (pc *PublisherConnection) stopPublishTimer() {
	if pc.publishTimer != nil {
		pc.publishTimer.Stop()
		pc.publishTimer = nil
	}
}

func (pc *PublisherConnection) flushThrottled() {
	if pc.disposing.IsSet() || pc.subscribed.IsNotSet() {
		return
	}

	pc.latestMutex.Lock()
	measurements := make([]Measurement, 0, len(pc.latestValues))

	for _, measurement := range pc.latestValues {
		measurements = append(measurements, measurement)
	}

	pc.latestValues = make(map[int32]Measurement)
	pc.latestMutex.Unlock()

	if len(measurements) > 0 {
		pc.publishMeasurements(measurements)
	}

	pc.startPublishTimer()
}

// queueMeasurement is called by the owning Publisher for every measurement routed to this connection.
// Throttled subscriptions retain only the latest value per signal until the next publish tick; otherwise
// the measurement is published immediately.
func (pc *PublisherConnection) queueMeasurement(measurement *Measurement) {
	if pc.subscribed.IsNotSet() {
		return
	}

	if pc.subscription.EnableTimeReasonabilityCheck && !pc.isTimestampReasonable(measurement.Timestamp) {
		return
	}

	signalIndex := pc.signalIndexCache.SignalIndex(measurement.SignalID)

	if signalIndex < 0 {
		return
	}

	if pc.subscription.Throttled {
		pc.latestMutex.Lock()
		pc.latestValues[signalIndex] = *measurement
		pc.latestMutex.Unlock()
		return
	}

	pc.publishMeasurements([]Measurement{*measurement})
}

func (pc *PublisherConnection) isTimestampReasonable(timestamp ticks.Ticks) bool {
	now := ticks.FromTime(time.Now())
	distance := float64(int64(now)-int64(timestamp)) / float64(ticks.PerSecond)

	if distance >= 0 {
		return distance <= pc.subscription.LagTime
	}

	return -distance <= pc.subscription.LeadTime
}

// publishMeasurements encodes and transmits a batch of measurements as a single DataPacket response,
// using TSSC compression when negotiated, otherwise the compact or full measurement format.
func (pc *PublisherConnection) publishMeasurements(measurements []Measurement) {
	pc.operationalModesMutex.RLock()
	cache := pc.signalIndexCache
	compression := pc.compression
	useCompactMeasurementFormat := pc.useCompactMeasurementFormat
	pc.operationalModesMutex.RUnlock()

	if cache == nil || len(measurements) == 0 {
		return
	}

	var flags DataPacketFlagsEnum

	if useCompactMeasurementFormat {
		flags |= DataPacketFlags.Compact
	}

	var body []byte
	var err error

	if compression == CompressionModes.TSSC {
		flags |= DataPacketFlags.Compressed
		body, err = pc.encodeTSSC(measurements, cache)
	} else {
		body = pc.encodeCompact(measurements, cache)
	}

	if err != nil {
		pc.dispatchErrorMessage(fmt.Sprintf("failed to encode measurements for \"%s\": %s", pc.connectionID, err.Error()))
		return
	}

	payload := make([]byte, 0, 5+len(body))
	payload = append(payload, byte(flags))
	countBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(countBytes, uint32(len(measurements)))
	payload = append(payload, countBytes...)
	payload = append(payload, body...)

	if err := pc.sendResponse(ServerResponse.DataPacket, ServerCommand.Subscribe, payload); err != nil {
		pc.dispatchErrorMessage(fmt.Sprintf("failed to publish to \"%s\": %s", pc.connectionID, err.Error()))
	}
}

func (pc *PublisherConnection) encodeCompact(measurements []Measurement, cache *SignalIndexCache) []byte {
	includeTime := pc.subscription.IncludeTime
	useMillisecondResolution := pc.subscription.UseMillisecondResolution
	buffer := make([]byte, 0, len(measurements)*17)
	scratch := make([]byte, 17)

	for i := range measurements {
		measurement := &measurements[i]
		cm := CompactMeasurement{
			Value:       float32(measurement.Value),
			Timestamp:   measurement.Timestamp,
			SignalIndex: uint32(cache.SignalIndex(measurement.SignalID)),
			Flags:       measurement.Flags.mapToCompactFlags(),
		}

		length := cm.Marshal(scratch, includeTime, useMillisecondResolution, &pc.baseTimeOffsets)
		buffer = append(buffer, scratch[:length]...)
	}

	return buffer
}

func (pc *PublisherConnection) encodeTSSC(measurements []Measurement, cache *SignalIndexCache) ([]byte, error) {
	buffer := make([]byte, maxPacketSize)
	pc.tsscEncoder.SetBuffer(buffer)

	for i := range measurements {
		measurement := &measurements[i]
		signalIndex := cache.SignalIndex(measurement.SignalID)

		added, err := pc.tsscEncoder.TryAdd(signalIndex, int64(measurement.Timestamp), uint32(measurement.Flags), float32(measurement.Value))

		if err != nil {
			return nil, err
		}

		if !added {
			return nil, errors.New("tssc encode buffer exhausted before all measurements were written")
		}
	}

	length, err := pc.tsscEncoder.FinishBlock()

	if err != nil {
		return nil, err
	}

	return buffer[:length], nil
}

// sendSucceeded replies to a solicited command with a success response and message.
func (pc *PublisherConnection) sendSucceeded(command ServerCommandEnum, message string) error {
	payload := append([]byte{byte(command)}, []byte(message)...)
	return pc.sendResponse(ServerResponse.Succeeded, command, payload)
}

// sendFailed replies to a solicited command with a failure response and message.
func (pc *PublisherConnection) sendFailed(command ServerCommandEnum, message string) error {
	payload := append([]byte{byte(command)}, []byte(message)...)
	return pc.sendResponse(ServerResponse.Failed, command, payload)
}

// sendNoOpPing sends a nil-operation keep-alive response when the command channel has been quiet.
func (pc *PublisherConnection) sendNoOpPing() {
	if pc.disposing.IsSet() {
		return
	}

	pc.writeMutex.Lock()
	idle := time.Since(pc.lastSend) >= noOPPingInterval
	pc.writeMutex.Unlock()

	if idle {
		_ = pc.sendResponse(ServerResponse.NoOP, ServerCommand.Connect, nil)
	}
}

// sendResponse writes a [4-byte length][1-byte response code][1-byte command echo][payload] frame to
// the command channel, matching responseHeaderSize.
func (pc *PublisherConnection) sendResponse(response ServerResponseEnum, commandEcho ServerCommandEnum, payload []byte) error {
	pc.writeMutex.Lock()
	defer pc.writeMutex.Unlock()

	frameLength := 2 + len(payload)
	frame := make([]byte, 4+frameLength)

	binary.BigEndian.PutUint32(frame, uint32(frameLength))
	frame[4] = byte(response)
	frame[5] = byte(commandEcho)
	copy(frame[6:], payload)

	if _, err := pc.conn.Write(frame); err != nil {
		return err
	}

	pc.lastSend = time.Now()

	return nil
}

func (pc *PublisherConnection) dispatchStatusMessage(message string) {
	if pc.StatusMessageCallback != nil {
		go pc.StatusMessageCallback(message)
	}
}

func (pc *PublisherConnection) dispatchErrorMessage(message string) {
	if pc.ErrorMessageCallback != nil {
		go pc.ErrorMessageCallback(message)
	}
}

// disconnect tears down the connection's subscription and closes the underlying socket.
func (pc *PublisherConnection) disconnect() {
	if pc.disposing.SetToIf(false, true) {
		pc.subscribed.UnSet()
		pc.stopPublishTimer()
		_ = pc.conn.Close()
		pc.connected.UnSet()
		pc.publisher.unregisterConnection(pc)
		pc.dispatchStatusMessage(fmt.Sprintf("client \"%s\" disconnected", pc.connectionID))
	}
}

// DecodeString decodes an STTP string according to the connection's negotiated operational encoding.
func (pc *PublisherConnection) DecodeString(data []byte, length uint32) string {
	if pc.encoding != OperationalEncoding.UTF8 {
		panic("Go implementation of STTP only supports UTF8 string encoding")
	}

	return string(data[:length])
}

// EncodeString encodes an STTP string according to the connection's negotiated operational encoding.
func (pc *PublisherConnection) EncodeString(value string) []byte {
	if pc.encoding != OperationalEncoding.UTF8 {
		panic("Go implementation of STTP only supports UTF8 string encoding")
	}

	return []byte(value)
}

// filterMetadataTable builds a new DataSet containing only the rows of tableName matching filterExpression,
// used to satisfy a MetadataRefresh request scoped to a subset of the publisher's full metadata.
func filterMetadataTable(metadata *data.DataSet, tableName, filterExpression string) (*data.DataSet, error) {
	table := metadata.Table(tableName)

	if table == nil {
		return metadata, nil
	}

	parser := data.NewFilterExpressionParserForDataSet(metadata, filterExpression, tableName)
	parser.SetTrackFilteredRows(true)

	if err := parser.Evaluate(true, true); err != nil {
		return nil, err
	}

	rows := parser.FilteredRows()
	filtered := data.NewDataSet()
	filteredTable := filtered.CreateTable(tableName)
	filtered.AddTable(filteredTable)

	for i := 0; i < table.ColumnCount(); i++ {
		filteredTable.AddColumn(filteredTable.CloneColumn(table.Column(i)))
	}

	for _, row := range rows {
		filteredTable.AddRow(filteredTable.CloneRow(row))
	}

	return filtered, nil
}

func encodeTicks(t ticks.Ticks) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, uint64(t))
	return buffer
}

// parseKeyValuePairs splits a semicolon-delimited, key=value connection string into a lookup map,
// the wire format used by Subscribe requests to carry SubscriptionInfo settings.
func parseKeyValuePairs(connectionString string) map[string]string {
	settings := make(map[string]string)

	for _, pair := range strings.Split(connectionString, ";") {
		pair = strings.TrimSpace(pair)

		if len(pair) == 0 {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)

		if len(parts) != 2 {
			continue
		}

		settings[strings.ToLower(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
	}

	return settings
}

func newSubscriptionInfoFromSettings(settings map[string]string) SubscriptionInfo {
	info := SubscriptionInfo{
		IncludeTime:                  true,
		EnableTimeReasonabilityCheck: true,
		LagTime:                      defaultLagTime,
		LeadTime:                     defaultLeadTime,
		PublishInterval:              defaultPublishInterval,
		ProcessingInterval:           -1,
	}

	if value, ok := settings["filterexpression"]; ok {
		info.FilterExpression = value
	}

	if value, ok := settings["throttled"]; ok {
		info.Throttled, _ = strconv.ParseBool(value)
	}

	if value, ok := settings["publishinterval"]; ok {
		info.PublishInterval, _ = strconv.ParseFloat(value, 64)
	}

	if value, ok := settings["includetime"]; ok {
		info.IncludeTime, _ = strconv.ParseBool(value)
	}

	if value, ok := settings["uselocalclockasrealtime"]; ok {
		info.UseLocalClockAsRealTime, _ = strconv.ParseBool(value)
	}

	if value, ok := settings["usemillisecondresolution"]; ok {
		info.UseMillisecondResolution, _ = strconv.ParseBool(value)
	}

	if value, ok := settings["requestnanvaluefilter"]; ok {
		info.RequestNaNValueFilter, _ = strconv.ParseBool(value)
	}

	if value, ok := settings["lagtime"]; ok {
		info.LagTime, _ = strconv.ParseFloat(value, 64)
	}

	if value, ok := settings["leadtime"]; ok {
		info.LeadTime, _ = strconv.ParseFloat(value, 64)
	}

	if value, ok := settings["enabletimereasonabilitycheck"]; ok {
		info.EnableTimeReasonabilityCheck, _ = strconv.ParseBool(value)
	}

	if value, ok := settings["starttime"]; ok {
		info.StartTime = value
	}

	if value, ok := settings["stoptime"]; ok {
		info.StopTime = value
	}

	if value, ok := settings["constraintparameters"]; ok {
		info.ConstraintParameters = value
	}

	return info
}
