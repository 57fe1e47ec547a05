// Package parse7 decodes Parse7-encoded bin files into typed records.
//
// # File Format
//
//	header   [Magic "CrypticS"(8)][Checksum(4)][Signature LString "Parse7"][PoolSize(4)]
//	pool     [PoolSize bytes of NUL-terminated strings][Padding(0-3)]
//	binary   [SectionSize(4)][RecordCount(4)][Record]...
//	record   [Length(4)][Length bytes]
//
// The checksum and section size are read and ignored. Strings inside records
// are 4-byte offsets into the pool. Each record is decoded against the shape
// of the requested Go type (see package shape) in isolation: a record that
// fails to decode is reported in Result.Failures and the remaining records are
// still decoded. Header, pool and framing errors fail the whole file, as does
// any data left after the last record.
//
// # Usage
//
//	res, err := parse7.Decode[objects.Power](data, parse7.WithLogger(logger))
//	if err != nil {
//	    return err // the file itself is unreadable
//	}
//	for _, f := range res.Failures {
//	    fmt.Printf("record %d: %v\n", f.Index, f.Err)
//	}
//
// # Concurrency
//
// Decode holds no shared state. With WithWorkers(n) the records of one file are
// decoded by up to n goroutines; results are always returned in file order.
package parse7
