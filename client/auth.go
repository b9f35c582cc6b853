package client

import (
	"bytes"
	"fmt"
)

// AuthCredentials holds a username and password for PasswordAuthenticator-style SASL authentication.
type AuthCredentials struct {
	Username string
	Password string
}

func (c *AuthCredentials) String() string {
	return fmt.Sprintf("AuthCredentials{username: %v}", c.Username)
}

// Marshal encodes the credentials as a PasswordAuthenticator SASL token: a NUL byte, the username, a NUL byte, and
// the password.
func (c *AuthCredentials) Marshal() []byte {
	token := bytes.NewBuffer(make([]byte, 0, len(c.Username)+len(c.Password)+2))
	token.WriteByte(0)
	token.WriteString(c.Username)
	token.WriteByte(0)
	token.WriteString(c.Password)
	return token.Bytes()
}

// Unmarshal decodes a PasswordAuthenticator SASL token produced by Marshal back into the receiver.
func (c *AuthCredentials) Unmarshal(token []byte) error {
	source := bytes.NewBuffer(append(token, 0))
	if _, err := source.ReadByte(); err != nil {
		return err
	}
	username, err := source.ReadString(0)
	if err != nil {
		return err
	}
	password, err := source.ReadString(0)
	if err != nil {
		return err
	}
	c.Username = username[:len(username)-1]
	c.Password = password[:len(password)-1]
	return nil
}

func (c AuthCredentials) Copy() *AuthCredentials {
	return &c
}

// PlainTextAuthenticator drives the SASL exchange for Cassandra's PasswordAuthenticator, the only server-side
// authenticator this client supports.
type PlainTextAuthenticator struct {
	Credentials *AuthCredentials
}

var expectedChallenge = []byte("PLAIN-START")

const passwordAuthenticatorClass = "org.apache.cassandra.auth.PasswordAuthenticator"

func (a *PlainTextAuthenticator) InitialResponse(authenticator string) ([]byte, error) {
	if authenticator != passwordAuthenticatorClass {
		return nil, fmt.Errorf("unsupported authenticator: %v", authenticator)
	}
	return a.Credentials.Marshal(), nil
}

func (a *PlainTextAuthenticator) EvaluateChallenge(challenge []byte) ([]byte, error) {
	if !bytes.Equal(challenge, expectedChallenge) {
		return nil, fmt.Errorf("incorrect SASL challenge from server, expecting PLAIN-START, got: %v", string(challenge))
	}
	return a.Credentials.Marshal(), nil
}
