// Package common provides the data structures shared by the client and the
// server side of the remote feedback service. It defines the wire protocol,
// the configuration structs and the logger factory.
//
// Key Components:
//
//   - Request / Response: the JSON bodies of the service. A GET answers with
//     {status, data}; a POST either appends a row (default action) or, with
//     action "update_status", changes the status of the first row with a
//     matching id.
//
//   - RowPayload: the loosely typed form of a row on the wire. FlexInt and
//     FlexString accept numbers and numeric strings; RowPayload.ToEntry coerces
//     them and falls back to the default round (1) and rating (3).
//
//   - ClientConfig, StoreConfig, ServerConfig: configuration for the remote
//     client, the feedback store facade and the reference service, each with a
//     String method for startup output.
//
//   - Logger: custom formatting for the dragonboat logger.ILogger instances
//     that every package obtains with logger.GetLogger.
package common
