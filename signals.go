package envelope

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"

	"github.com/zoobzio/envelope/digest"
)

// Signals for envelope lifecycle events.
var (
	SignalNodeCreated      = capitan.NewSignal("envelope.node.created", "Node envelope assembled from subject and assertions")
	SignalAssertionAdded   = capitan.NewSignal("envelope.assertion.added", "Assertion attached to a subject")
	SignalAssertionDeduped = capitan.NewSignal("envelope.assertion.deduped", "Assertion skipped as a digest duplicate")
	SignalEncrypted        = capitan.NewSignal("envelope.encrypted", "Subject encrypted")
	SignalDecrypted        = capitan.NewSignal("envelope.decrypted", "Subject decrypted")
	SignalCompressed       = capitan.NewSignal("envelope.compressed", "Subject compressed")
	SignalUncompressed     = capitan.NewSignal("envelope.uncompressed", "Subject uncompressed")
	SignalElided           = capitan.NewSignal("envelope.elided", "Subtree replaced with its digest")
	SignalEncoded          = capitan.NewSignal("envelope.encoded", "Envelope encoded to CBOR")
	SignalDecoded          = capitan.NewSignal("envelope.decoded", "Envelope decoded from CBOR")
)

// Keys for typed event data.
var (
	KeyOp             = capitan.NewStringKey("op")
	KeyKind           = capitan.NewStringKey("kind")
	KeyDigest         = capitan.NewStringKey("digest")
	KeySize           = capitan.NewIntKey("size")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyAssertionCount = capitan.NewIntKey("assertion_count")
)

func emitNodeCreated(d digest.Digest, assertionCount int) {
	capitan.Emit(context.Background(), SignalNodeCreated,
		KeyDigest.Field(d.String()),
		KeyAssertionCount.Field(assertionCount),
	)
}

func emitAssertionAdded(d digest.Digest) {
	capitan.Emit(context.Background(), SignalAssertionAdded,
		KeyDigest.Field(d.String()),
	)
}

func emitAssertionDeduped(d digest.Digest) {
	capitan.Emit(context.Background(), SignalAssertionDeduped,
		KeyDigest.Field(d.String()),
	)
}

func emitEncrypted(d digest.Digest, size int, dur time.Duration, err error) {
	emitWithDuration(SignalEncrypted, d, size, dur, err)
}

func emitDecrypted(d digest.Digest, size int, dur time.Duration, err error) {
	emitWithDuration(SignalDecrypted, d, size, dur, err)
}

func emitCompressed(d digest.Digest, size int, dur time.Duration, err error) {
	emitWithDuration(SignalCompressed, d, size, dur, err)
}

func emitUncompressed(d digest.Digest, size int, dur time.Duration, err error) {
	emitWithDuration(SignalUncompressed, d, size, dur, err)
}

func emitElided(d digest.Digest) {
	capitan.Emit(context.Background(), SignalElided,
		KeyDigest.Field(d.String()),
	)
}

func emitEncoded(op string, kind Kind, size int, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyOp.Field(op),
		KeyKind.Field(kind.String()),
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncoded, fields...)
	} else {
		capitan.Emit(ctx, SignalEncoded, fields...)
	}
}

func emitDecoded(size int, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecoded, fields...)
	} else {
		capitan.Emit(ctx, SignalDecoded, fields...)
	}
}

func emitWithDuration(signal capitan.Signal, d digest.Digest, size int, dur time.Duration, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyDigest.Field(d.String()),
		KeySize.Field(size),
		KeyDuration.Field(dur),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, signal, fields...)
	} else {
		capitan.Emit(ctx, signal, fields...)
	}
}
