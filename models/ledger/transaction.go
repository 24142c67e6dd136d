// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package ledger

// Transaction is a transfer of value from a sender to a recipient. The nonce is
// chosen by the submitter and only serves as additional entropy for the
// proof-of-work; it is not a signature.
type Transaction struct {
	Sender    string `json:"sender" cbor:"sender"`
	Recipient string `json:"recipient" cbor:"recipient"`
	Amount    uint64 `json:"amount" cbor:"amount"`
	Nonce     uint64 `json:"nonce" cbor:"nonce"`
}

// Coinbase returns the reward transaction paying the block subsidy to the
// given miner.
func Coinbase(miner string, nonce uint64) Transaction {
	tx := Transaction{
		Sender:    CoinbaseSender,
		Recipient: miner,
		Amount:    Subsidy,
		Nonce:     nonce,
	}

	return tx
}

// IsCoinbase returns whether the transaction is a block reward.
func (t Transaction) IsCoinbase() bool {
	return t.Sender == CoinbaseSender
}

// Submission is a transaction as received from a client. All fields are
// pointers, so that a missing field can be told apart from a zero value.
type Submission struct {
	Sender    *string `json:"sender" validate:"required,min=1"`
	Recipient *string `json:"recipient" validate:"required,min=1"`
	Amount    *uint64 `json:"amount" validate:"required"`
	Nonce     *uint64 `json:"nonce" validate:"required"`
}

// NewSubmission creates a submission with all fields set.
func NewSubmission(sender string, recipient string, amount uint64, nonce uint64) Submission {
	s := Submission{
		Sender:    &sender,
		Recipient: &recipient,
		Amount:    &amount,
		Nonce:     &nonce,
	}

	return s
}

// Validate checks that all of the submission's fields are present. When some
// are missing, it returns a ValidationError listing them.
func (s Submission) Validate() error {
	return validateStruct(s)
}

// Transaction converts a validated submission into a transaction.
func (s Submission) Transaction() (Transaction, error) {
	err := s.Validate()
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		Sender:    *s.Sender,
		Recipient: *s.Recipient,
		Amount:    *s.Amount,
		Nonce:     *s.Nonce,
	}

	return tx, nil
}
