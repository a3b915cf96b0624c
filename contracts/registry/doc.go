/*
Package registry contains implementation of Registry contract deployed in
DocProof chain.

Registry contract stores notarized documents identified by their content
hashes and drives their lifecycle: collecting signatures of required signers,
collecting approvals, rejection and version chains. Who is allowed to
notarize is decided by the Roster contract; the Registry consults it on every
Notarize call. Every mutation is a single contract invocation, so it is
applied atomically or not at all, and every applied mutation produces exactly
one notification for external indexers. Timestamps of records and
notifications are the timestamps of the blocks that carry the transactions.

# Contract notifications

Notarized notification. This notification is produced when an authorized
notary registers a new content hash.

	Notarized:
	  - name: documentHash
	    type: Hash256
	  - name: notary
	    type: Hash160

Signed notification. This notification is produced when a required signer
signs a pending document.

	Signed:
	  - name: documentHash
	    type: Hash256
	  - name: signer
	    type: Hash160

Approved notification. This notification is produced when any account
approves a pending or signed document.

	Approved:
	  - name: documentHash
	    type: Hash256
	  - name: approver
	    type: Hash160

Rejected notification. This notification is produced when a required signer
terminally rejects a pending document.

	Rejected:
	  - name: documentHash
	    type: Hash256
	  - name: signer
	    type: Hash160
	  - name: reason
	    type: String

VersionCreated notification. This notification is produced when a new
version is appended to a document lineage.

	VersionCreated:
	  - name: originalHash
	    type: Hash256
	  - name: versionHash
	    type: Hash256
	  - name: creator
	    type: Hash160
	  - name: number
	    type: Integer
*/
package registry

/*
Contract storage model.

# Summary
Current conventions:
 <hash>: 32-byte content hash of a document or document version (SHA-256)
 <account>: 20-byte NEO3 account script hash

Key-value storage format:
 - 0x00 -> int
   total number of documents created by Notarize
 - 0x01<hash> -> std.Serialize(Document)
   document records by their content hashes, versions included
 - 0x02<hash><account> -> []byte{1}
   marker of a required signer that has signed the document
 - 0x03<hash><account> -> []byte{1}
   marker of an account that has approved the document
 - 0x04<hash> -> std.Serialize([]interop.Hash160)
   approver list of the document in approval order
 - 0x05<hash> -> std.Serialize([]ChainVersion)
   version chain of the lineage rooted at the notarized hash
 - 0x06<hash> -> interop.Hash256
   latest version hash of the lineage rooted at the notarized hash
 - 'rosterScriptHash' -> interop.Hash160
   Roster contract reference

# Documents
Contract stores one Document record per content hash ever accepted. Records
are never deleted, rejected and superseded documents stay for audit. The
required-signer list of a record is immutable, signing and approval progress
is tracked in the record counters and in the marker keys.

# Versions
Each Notarize call roots a lineage: an ordered ChainVersion list that always
has exactly one entry flagged latest, mirrored by the explicit latest pointer.
CreateVersion extends the lineage of the original (notarized) hash only,
version hashes do not root their own lineages even though they are document
keys.
*/
