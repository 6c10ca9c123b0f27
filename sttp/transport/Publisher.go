//******************************************************************************************************
//  Publisher.go - Gbtc
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
	"fmt"
	"net"
	"sync"

	"github.com/tevino/abool/v2"

	"github.com/sttp/goapi/sttp/data"
	"github.com/sttp/goapi/sttp/guid"
)

// Publisher represents an STTP data publication server: it accepts subscriber connections over TCP,
// answers metadata and subscription requests against its Metadata DataSet, and fans out published
// measurements to every PublisherConnection currently routed to receive them.
type Publisher struct {
	// Metadata holds the full set of measurement, device, and phasor metadata this publisher exposes
	// to subscribers, serialized on MetadataRefresh and used to resolve filter expressions on Subscribe.
	Metadata *data.DataSet

	// MetadataTableName identifies the primary table within Metadata that filter expressions are
	// evaluated against, and the root element name used when serializing metadata to XML.
	MetadataTableName string

	// SecurityMode controls whether incoming connections are expected to negotiate TLS. Plaintext-only
	// operation is currently supported; see DESIGN.md for the TLS open question.
	SecurityMode SecurityModeEnum

	// StatusMessageCallback, when assigned, is invoked with informational status messages.
	StatusMessageCallback func(string)
	// ErrorMessageCallback, when assigned, is invoked with error messages raised while servicing connections.
	ErrorMessageCallback func(string)
	// ClientConnectedCallback, when assigned, is invoked whenever a subscriber completes its subscribe request.
	ClientConnectedCallback func(connection *PublisherConnection)
	// ClientDisconnectedCallback, when assigned, is invoked whenever a subscriber connection is torn down.
	ClientDisconnectedCallback func(subscriberID guid.Guid)

	listener  net.Listener
	disposing abool.AtomicBool

	connectionsMutex sync.RWMutex
	connections      map[guid.Guid]*PublisherConnection

	routesMutex sync.RWMutex
	routes      map[guid.Guid][]*PublisherConnection

	measurementKeysMutex sync.RWMutex
	measurementKeys      map[guid.Guid]measurementKey
}

type measurementKey struct {
	source string
	id     uint64
}

// NewPublisher creates a new, unstarted Publisher against the given metadata DataSet.
func NewPublisher(metadata *data.DataSet) *Publisher {
	return &Publisher{
		Metadata:          metadata,
		MetadataTableName: "Measurement",
		connections:       make(map[guid.Guid]*PublisherConnection),
		routes:            make(map[guid.Guid][]*PublisherConnection),
		measurementKeys:   make(map[guid.Guid]measurementKey),
	}
}

// DefineMeasurementKey associates a human-readable source/ID measurement key with a signal ID, used
// when a connection's signal index cache is built. Measurements without a defined key fall back to
// their Guid string as source with an ID of zero.
func (pub *Publisher) DefineMeasurementKey(signalID guid.Guid, source string, id uint64) {
	pub.measurementKeysMutex.Lock()
	pub.measurementKeys[signalID] = measurementKey{source: source, id: id}
	pub.measurementKeysMutex.Unlock()
}

func (pub *Publisher) lookupMeasurementKey(signalID guid.Guid) (string, uint64) {
	pub.measurementKeysMutex.RLock()
	defer pub.measurementKeysMutex.RUnlock()

	if key, ok := pub.measurementKeys[signalID]; ok {
		return key.source, key.id
	}

	return signalID.String(), 0
}

// Start begins listening for subscriber connections on the specified TCP port and spawns the accept loop.
func (pub *Publisher) Start(port uint16) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))

	if err != nil {
		return err
	}

	pub.listener = listener

	go pub.acceptLoop()

	pub.dispatchStatusMessage(fmt.Sprintf("publisher listening on port %d", port))

	return nil
}

// acceptLoop runs for the lifetime of the listener, handing each accepted connection off to its own
// PublisherConnection and read-loop goroutine.
func (pub *Publisher) acceptLoop() {
	for pub.disposing.IsNotSet() {
		conn, err := pub.listener.Accept()

		if err != nil {
			if pub.disposing.IsNotSet() {
				pub.dispatchErrorMessage(fmt.Sprintf("failure accepting connection: %s", err.Error()))
			}

			return
		}

		connection := newPublisherConnection(pub, conn)
		connection.subscriberID = guid.New()
		connection.StatusMessageCallback = pub.StatusMessageCallback
		connection.ErrorMessageCallback = pub.ErrorMessageCallback

		pub.registerConnection(connection)

		go connection.run()
	}
}

// Stop closes the listener and disconnects every active subscriber connection.
func (pub *Publisher) Stop() {
	if !pub.disposing.SetToIf(false, true) {
		return
	}

	if pub.listener != nil {
		_ = pub.listener.Close()
	}

	pub.connectionsMutex.RLock()
	connections := make([]*PublisherConnection, 0, len(pub.connections))

	for _, connection := range pub.connections {
		connections = append(connections, connection)
	}

	pub.connectionsMutex.RUnlock()

	for _, connection := range connections {
		connection.disconnect()
	}
}

// ConnectionCount returns the number of subscriber connections currently being serviced.
func (pub *Publisher) ConnectionCount() int {
	pub.connectionsMutex.RLock()
	defer pub.connectionsMutex.RUnlock()

	return len(pub.connections)
}

func (pub *Publisher) registerConnection(connection *PublisherConnection) {
	pub.connectionsMutex.Lock()
	pub.connections[connection.subscriberID] = connection
	pub.connectionsMutex.Unlock()
}

func (pub *Publisher) unregisterConnection(connection *PublisherConnection) {
	pub.connectionsMutex.Lock()
	delete(pub.connections, connection.subscriberID)
	pub.connectionsMutex.Unlock()

	pub.updateRoutes(connection, nil)

	if pub.ClientDisconnectedCallback != nil {
		go pub.ClientDisconnectedCallback(connection.subscriberID)
	}
}

// updateRoutes replaces the set of signal IDs a connection is routed to receive. Passing a nil or empty
// signalIDs removes the connection from the routing table entirely, as happens on Unsubscribe/disconnect.
func (pub *Publisher) updateRoutes(connection *PublisherConnection, signalIDs guid.HashSet) {
	pub.routesMutex.Lock()
	defer pub.routesMutex.Unlock()

	for signalID, subscribers := range pub.routes {
		filtered := subscribers[:0]

		for _, subscriber := range subscribers {
			if subscriber != connection {
				filtered = append(filtered, subscriber)
			}
		}

		if len(filtered) == 0 {
			delete(pub.routes, signalID)
		} else {
			pub.routes[signalID] = filtered
		}
	}

	for signalID := range signalIDs {
		pub.routes[signalID] = append(pub.routes[signalID], connection)
	}

	if len(signalIDs) > 0 && pub.ClientConnectedCallback != nil {
		go pub.ClientConnectedCallback(connection)
	}
}

// PublishMeasurements routes each measurement to every connection currently subscribed to its signal ID.
func (pub *Publisher) PublishMeasurements(measurements []Measurement) {
	pub.routesMutex.RLock()
	defer pub.routesMutex.RUnlock()

	for i := range measurements {
		measurement := &measurements[i]

		for _, connection := range pub.routes[measurement.SignalID] {
			connection.queueMeasurement(measurement)
		}
	}
}

func (pub *Publisher) dispatchStatusMessage(message string) {
	if pub.StatusMessageCallback != nil {
		go pub.StatusMessageCallback(message)
	}
}

func (pub *Publisher) dispatchErrorMessage(message string) {
	if pub.ErrorMessageCallback != nil {
		go pub.ErrorMessageCallback(message)
	}
}
